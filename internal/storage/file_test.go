package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jurgensen-SJB/supermercado/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Round Trip", func(t *testing.T) {
		// Arrange
		store, err := storage.NewFileStore(t.TempDir())
		assert.NoError(t, err)

		type payload struct {
			Theme string `json:"theme"`
		}

		// Act
		err = store.Set(ctx, storage.KeyTheme, payload{Theme: "dark"})
		assert.NoError(t, err)

		var got payload
		found, err := store.Get(ctx, storage.KeyTheme, &got)

		// Assert
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "dark", got.Theme)
	})

	t.Run("Success - Missing Key Reports Absent", func(t *testing.T) {
		// Arrange
		store, err := storage.NewFileStore(t.TempDir())
		assert.NoError(t, err)

		// Act
		var got string
		found, err := store.Get(ctx, storage.KeyTheme, &got)

		// Assert
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success - Set Overwrites Previous Value", func(t *testing.T) {
		// Arrange
		store, err := storage.NewFileStore(t.TempDir())
		assert.NoError(t, err)
		assert.NoError(t, store.Set(ctx, storage.KeyEco, false))

		// Act
		assert.NoError(t, store.Set(ctx, storage.KeyEco, true))

		var got bool
		found, err := store.Get(ctx, storage.KeyEco, &got)

		// Assert
		assert.NoError(t, err)
		assert.True(t, found)
		assert.True(t, got)
	})

	t.Run("Success - Delete Is Idempotent", func(t *testing.T) {
		// Arrange
		store, err := storage.NewFileStore(t.TempDir())
		assert.NoError(t, err)
		assert.NoError(t, store.Set(ctx, storage.KeyCart, []string{"x"}))

		// Act & Assert
		assert.NoError(t, store.Delete(ctx, storage.KeyCart))
		assert.NoError(t, store.Delete(ctx, storage.KeyCart))

		var got []string
		found, err := store.Get(ctx, storage.KeyCart, &got)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Failure - Corrupt Payload Is Flagged Malformed", func(t *testing.T) {
		// Arrange: write garbage where the JSON file would live
		dir := t.TempDir()
		store, err := storage.NewFileStore(dir)
		assert.NoError(t, err)

		path := filepath.Join(dir, storage.KeyAuth+".json")
		assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		// Act
		var got map[string]any
		found, err := store.Get(ctx, storage.KeyAuth, &got)

		// Assert
		assert.False(t, found)
		assert.ErrorIs(t, err, storage.ErrMalformed)
	})

	t.Run("Success - Temp Files Do Not Linger", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		store, err := storage.NewFileStore(dir)
		assert.NoError(t, err)

		// Act
		assert.NoError(t, store.Set(ctx, storage.KeyCart, []int{1, 2, 3}))

		// Assert
		leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
		assert.NoError(t, err)
		assert.Empty(t, leftovers)
	})
}
