package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goal-tracker/internal/database"
)

func newTestRepository(t *testing.T) *database.Repository {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	// одна in-memory база на все соединения пула
	db.GetDB().SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	return database.NewRepository(db)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
