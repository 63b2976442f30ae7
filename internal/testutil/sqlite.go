package testutil

import (
	"context"
	"testing"

	"github.com/BuzzLyutic/task-tracker/internal/storage"
)

// NewSQLiteStore returns a migrated in-memory store closed with the test.
func NewSQLiteStore(t *testing.T) *storage.Store {
	t.Helper()
	ctx := context.Background()

	store, err := storage.Open(ctx, "sqlite://")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(store.Close)

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate sqlite: %v", err)
	}
	return store
}
