package main

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/activity"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/config"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/db"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/handler"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/session"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			sessionManager := session.NewManager(database, cfg.DB.Driver, cfg.SessionLifetime, !cfg.InsecureCookies)
			client := activity.NewClient(cfg.Fetch.Timeout)
			templateStore := store.NewTemplateStore(database)

			router := handler.NewRouter(handler.Deps{
				SessionManager: sessionManager,
				Client:         client,
				TemplateStore:  templateStore,
			})

			log.Printf("listening on %s", cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
