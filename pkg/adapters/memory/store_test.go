package memory_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/aretw0/sceneswap/pkg/adapters/memory"
	"github.com/aretw0/sceneswap/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SceneStore = (*memory.Store)(nil)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSceneStoreContract(t, store, "scenes")
}

func TestMemoryStore_DeniedDirs(t *testing.T) {
	store := memory.NewStore(memory.WithDeniedDirs("/readonly"))
	ctx := context.Background()

	created, err := store.EnsureDir(ctx, "/readonly/levels")
	assert.False(t, created)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.False(t, store.HasDir("/readonly/levels"))

	created, err = store.EnsureDir(ctx, "/readonly-not/levels")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestMemoryStore_WithDirs(t *testing.T) {
	store := memory.NewStore(memory.WithDirs("/assets/levels"))

	assert.True(t, store.HasDir("/assets"))
	assert.True(t, store.HasDir("/assets/levels"))

	require.NoError(t, store.Write(context.Background(), "/assets/levels/Level.tscn", []byte("x")))
	assert.Equal(t, []string{"/assets/levels/Level.tscn"}, store.Files())
}

func TestMemoryStore_CopiesData(t *testing.T) {
	store := memory.NewStore(memory.WithDirs("a"))
	ctx := context.Background()

	data := []byte("abc")
	require.NoError(t, store.Write(ctx, "a/s.tscn", data))
	data[0] = 'z'

	got, err := store.Read(ctx, "a/s.tscn")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
