package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/stretchr/testify/require"
)

func TestProfileFromData(t *testing.T) {
	testCases := []struct {
		name string
		data map[string]interface{}
		want string
	}{
		{name: "string token", data: map[string]interface{}{"fcmToken": "TOKEN123", "name": "Ann"}, want: "TOKEN123"},
		{name: "missing token", data: map[string]interface{}{"name": "Ann"}, want: ""},
		{name: "null token", data: map[string]interface{}{"fcmToken": nil}, want: ""},
		{name: "non string token", data: map[string]interface{}{"fcmToken": int64(7)}, want: ""},
		{name: "nil data", data: nil, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := profileFromData("u1", tc.data)
			require.Equal(t, &dispatcher.UserProfile{ID: "u1", FCMToken: tc.want}, profile)
		})
	}
}

type fakeRow struct {
	id    string
	token pgtype.Text
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.id
	*dest[1].(*pgtype.Text) = r.token
	return nil
}

type fakeDB struct {
	row  fakeRow
	args []interface{}
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, args ...interface{}) pgx.Row {
	db.args = args
	return db.row
}

func TestPostgresStore_LookupUser(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the stored token", func(t *testing.T) {
		req := require.New(t)
		db := &fakeDB{row: fakeRow{id: "u1", token: pgtype.Text{String: "TOKEN123", Valid: true}}}

		profile, err := NewPostgresStore(db).LookupUser(ctx, "u1")

		req.NoError(err)
		req.Equal(&dispatcher.UserProfile{ID: "u1", FCMToken: "TOKEN123"}, profile)
		req.Equal([]interface{}{"u1"}, db.args)
	})

	t.Run("should return a profile without token when the column is null", func(t *testing.T) {
		req := require.New(t)
		db := &fakeDB{row: fakeRow{id: "u2"}}

		profile, err := NewPostgresStore(db).LookupUser(ctx, "u2")

		req.NoError(err)
		req.Equal(&dispatcher.UserProfile{ID: "u2"}, profile)
	})

	t.Run("should return nil when the user does not exist", func(t *testing.T) {
		req := require.New(t)
		db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}

		profile, err := NewPostgresStore(db).LookupUser(ctx, "ghost")

		req.NoError(err)
		req.Nil(profile)
	})

	t.Run("should wrap other query errors", func(t *testing.T) {
		req := require.New(t)
		queryErr := errors.New("connection reset")
		db := &fakeDB{row: fakeRow{err: queryErr}}

		profile, err := NewPostgresStore(db).LookupUser(ctx, "u3")

		req.ErrorIs(err, queryErr)
		req.Nil(profile)
	})
}
