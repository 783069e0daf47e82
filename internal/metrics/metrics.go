package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptgen_fetches_total",
		Help: "Activity content fetch attempts.",
	}, []string{"status"})

	GenerationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promptgen_generations_total",
		Help: "Prompts generated, counting each batch row.",
	})

	BatchAnswersLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promptgen_batch_answers_loaded_total",
		Help: "Answers accepted from uploaded batch files.",
	})

	BatchLoadErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promptgen_batch_load_errors_total",
		Help: "Batch files rejected (bad format or missing Answers column).",
	})

	UnknownTokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promptgen_unknown_tokens_total",
		Help: "Placeholders outside the allowed set seen at generation time.",
	})
)
