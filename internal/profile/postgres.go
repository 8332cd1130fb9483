package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/katatrina/message-notifier/internal/dispatcher"
)

const getUserFCMToken = `-- name: GetUserFCMToken :one
SELECT id, fcm_token FROM users
WHERE id = $1
`

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PostgresStore reads user profiles from a relational users table.
type PostgresStore struct {
	db DBTX
}

func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) LookupUser(ctx context.Context, id string) (*dispatcher.UserProfile, error) {
	var (
		userID   string
		fcmToken pgtype.Text
	)

	err := s.db.QueryRow(ctx, getUserFCMToken, id).Scan(&userID, &fcmToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	profile := &dispatcher.UserProfile{ID: userID}
	if fcmToken.Valid {
		profile.FCMToken = fcmToken.String
	}

	return profile, nil
}
