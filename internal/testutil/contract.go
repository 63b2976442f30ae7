package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// RunRepositoryContract checks the behaviour every repository implementation
// must share. The store has to be empty when it is called.
func RunRepositoryContract(t *testing.T, users repo.UserRepository, tasks repo.TaskRepository) {
	ctx := context.Background()

	alice, err := users.Create(ctx, model.User{Username: "alice", HashedPassword: "hash-a", IsActive: true})
	require.NoError(t, err)
	bob, err := users.Create(ctx, model.User{Username: "bob", HashedPassword: "hash-b", IsActive: true})
	require.NoError(t, err)

	t.Run("users", func(t *testing.T) {
		assert.NotZero(t, alice.ID)
		assert.NotEqual(t, alice.ID, bob.ID)
		assert.True(t, alice.IsActive)
		assert.False(t, alice.CreatedAt.IsZero())

		got, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.Equal(t, "hash-a", got.HashedPassword)

		got, err = users.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Username)

		_, err = users.Create(ctx, model.User{Username: "alice", HashedPassword: "x", IsActive: true})
		assert.ErrorIs(t, err, repo.ErrorConflict)

		_, err = users.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, repo.ErrorNotFound)
		_, err = users.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, repo.ErrorNotFound)
	})

	milk, err := tasks.Create(ctx, model.Task{Title: "buy milk", OwnerID: &alice.ID})
	require.NoError(t, err)
	dog, err := tasks.Create(ctx, model.Task{Title: "Walk the dog", Description: strPtr("then pour MILK"), OwnerID: &bob.ID})
	require.NoError(t, err)
	report, err := tasks.Create(ctx, model.Task{Title: "write 100% report", Description: strPtr("quarterly"), OwnerID: &alice.ID})
	require.NoError(t, err)

	ids := func(list []model.Task) []int64 {
		out := make([]int64, 0, len(list))
		for _, t := range list {
			out = append(out, t.ID)
		}
		return out
	}

	t.Run("create assigns id and defaults", func(t *testing.T) {
		assert.NotZero(t, milk.ID)
		assert.Equal(t, "buy milk", milk.Title)
		assert.Nil(t, milk.Description)
		assert.False(t, milk.IsDone)
		require.NotNil(t, milk.OwnerID)
		assert.Equal(t, alice.ID, *milk.OwnerID)
		assert.False(t, milk.CreatedAt.IsZero())
	})

	t.Run("list newest first", func(t *testing.T) {
		all, err := tasks.List(ctx, model.TaskFilter{})
		require.NoError(t, err)
		assert.Equal(t, []int64{report.ID, dog.ID, milk.ID}, ids(all))
	})

	t.Run("list by owner", func(t *testing.T) {
		own, err := tasks.List(ctx, model.TaskFilter{OwnerID: &alice.ID})
		require.NoError(t, err)
		assert.Equal(t, []int64{report.ID, milk.ID}, ids(own))
	})

	t.Run("search title or description ignoring case", func(t *testing.T) {
		found, err := tasks.List(ctx, model.TaskFilter{Query: "Milk"})
		require.NoError(t, err)
		assert.Equal(t, []int64{dog.ID, milk.ID}, ids(found))

		found, err = tasks.List(ctx, model.TaskFilter{OwnerID: &bob.ID, Query: "milk"})
		require.NoError(t, err)
		assert.Equal(t, []int64{dog.ID}, ids(found))
	})

	t.Run("search wildcards are literal", func(t *testing.T) {
		found, err := tasks.List(ctx, model.TaskFilter{Query: "100%"})
		require.NoError(t, err)
		assert.Equal(t, []int64{report.ID}, ids(found))

		found, err = tasks.List(ctx, model.TaskFilter{Query: "_"})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := tasks.Update(ctx, dog.ID, model.TaskPatch{IsDone: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, updated.IsDone)
		assert.Equal(t, "Walk the dog", updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "then pour MILK", *updated.Description)
		assert.Equal(t, dog.OwnerID, updated.OwnerID)
		assert.True(t, dog.CreatedAt.Equal(updated.CreatedAt))

		updated, err = tasks.Update(ctx, dog.ID, model.TaskPatch{Title: strPtr("Walk the cat"), DescriptionSet: true})
		require.NoError(t, err)
		assert.Equal(t, "Walk the cat", updated.Title)
		assert.Nil(t, updated.Description)
		assert.True(t, updated.IsDone)
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := tasks.Update(ctx, 99999, model.TaskPatch{IsDone: boolPtr(true)})
		assert.ErrorIs(t, err, repo.ErrorNotFound)
	})

	t.Run("delete twice", func(t *testing.T) {
		require.NoError(t, tasks.Delete(ctx, milk.ID))
		assert.ErrorIs(t, tasks.Delete(ctx, milk.ID), repo.ErrorNotFound)

		_, err := tasks.Get(ctx, milk.ID)
		assert.ErrorIs(t, err, repo.ErrorNotFound)
	})
}
