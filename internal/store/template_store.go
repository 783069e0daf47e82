// Package store persists named prompt templates.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Template is a saved, named prompt template.
type Template struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type TemplateStore struct {
	db *sqlx.DB
}

func NewTemplateStore(db *sqlx.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

func (s *TemplateStore) GetByID(ctx context.Context, id string) (*Template, error) {
	var t Template
	err := s.db.GetContext(ctx, &t, `SELECT * FROM templates WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TemplateStore) GetByName(ctx context.Context, name string) (*Template, error) {
	var t Template
	err := s.db.GetContext(ctx, &t, `SELECT * FROM templates WHERE name = ?`, name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TemplateStore) List(ctx context.Context) ([]*Template, error) {
	var templates []*Template
	err := s.db.SelectContext(ctx, &templates, `SELECT * FROM templates ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *TemplateStore) Create(ctx context.Context, name, body string) (*Template, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO templates (id, name, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, name, body, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *TemplateStore) Update(ctx context.Context, id, name, body string) (*Template, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		UPDATE templates SET name = ?, body = ?, updated_at = ? WHERE id = ?
	`, name, body, now, id)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	return err
}
