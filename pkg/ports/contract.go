package ports

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSceneStoreContract runs a suite of tests to verify that a SceneStore implementation
// adheres to the defined interface contract. root must be an empty, writable location.
func RunSceneStoreContract(t *testing.T, store SceneStore, root string) {
	ctx := context.Background()

	t.Run("EnsureDir creates nested directories once", func(t *testing.T) {
		dir := filepath.Join(root, "ensure", "a", "b")

		created, err := store.EnsureDir(ctx, dir)
		require.NoError(t, err)
		assert.True(t, created, "first EnsureDir should create the directory")

		created, err = store.EnsureDir(ctx, dir)
		require.NoError(t, err)
		assert.False(t, created, "second EnsureDir should find the directory")
	})

	t.Run("Write and Read", func(t *testing.T) {
		dir := filepath.Join(root, "rw")
		_, err := store.EnsureDir(ctx, dir)
		require.NoError(t, err)

		path := filepath.Join(dir, "Scene.tscn")
		require.NoError(t, store.Write(ctx, path, []byte("first")))

		data, err := store.Read(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))
	})

	t.Run("Last writer wins", func(t *testing.T) {
		dir := filepath.Join(root, "overwrite")
		_, err := store.EnsureDir(ctx, dir)
		require.NoError(t, err)

		path := filepath.Join(dir, "Scene.tscn")
		require.NoError(t, store.Write(ctx, path, []byte("one")))
		require.NoError(t, store.Write(ctx, path, []byte("two")))

		data, err := store.Read(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "two", string(data))
	})

	t.Run("Read Non-Existent", func(t *testing.T) {
		_, err := store.Read(ctx, filepath.Join(root, "missing", "Nope.tscn"))
		assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	})

	t.Run("Write does not create directories", func(t *testing.T) {
		path := filepath.Join(root, "never-created", "Scene.tscn")
		err := store.Write(ctx, path, []byte("data"))
		require.Error(t, err)

		_, err = store.Read(ctx, path)
		assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	})
}
