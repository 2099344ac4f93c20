// Package store holds the pgx-backed repositories the pipeline reads
// recipients, preferences, and templates from, and writes delivery
// audit rows to.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"notifyhub/internal/model"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

// Get returns the recipient's contact fields, used by the ingestion
// stage to enrich a SubmittedEvent.
func (s *UserStore) Get(ctx context.Context, userID string) (*model.User, error) {
	query := `SELECT id, email, phone, push_tokens FROM users WHERE id = $1`

	var u model.User
	err := s.db.QueryRow(ctx, query, userID).Scan(&u.ID, &u.Email, &u.Phone, &u.PushTokens)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
