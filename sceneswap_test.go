package sceneswap_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/sceneswap"
	"github.com/aretw0/sceneswap/pkg/adapters/memory"
	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/aretw0/sceneswap/pkg/ports"
	"github.com/aretw0/sceneswap/pkg/scenefile"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeScene(kind domain.Kind) *domain.Node {
	root := domain.NewNode("Root", domain.KindNode3D)
	cube := root.AddChild(domain.NewNode("Cube", domain.KindMeshInstance3D))
	cm := cube.AddChild(domain.NewNode("Cube_CM", kind))
	cm.Transform = domain.NewTransform(mgl32.Vec3{0, 1, 0}, mgl32.QuatIdent(), mgl32.Vec3{3, 1, 3})
	return root
}

func newImporter(t *testing.T, opts ...sceneswap.Option) (*sceneswap.Importer, *memory.Store, *bytes.Buffer) {
	t.Helper()
	store := memory.NewStore()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]sceneswap.Option{sceneswap.WithStore(store), sceneswap.WithLogger(logger)}, opts...)
	imp, err := sceneswap.New(opts...)
	require.NoError(t, err)
	return imp, store, &logs
}

func TestPostImport_ReplacesAndSaves(t *testing.T) {
	imp, store, _ := newImporter(t)
	root := cubeScene(domain.KindStaticBody3D)
	want := root.Child(0).Child(0).Transform

	res := imp.PostImport(context.Background(), root, ports.StaticSource("/assets/cube.glb"))

	require.NoError(t, res.Err)
	assert.Same(t, root, res.Root)
	assert.Equal(t, 1, res.Replaced)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "/assets/Root.tscn", res.SavePath)

	cm := root.Child(0).Child(0)
	assert.Equal(t, "Cube_CM", cm.Name)
	assert.Equal(t, domain.KindArea3D, cm.Kind)
	assert.True(t, want.Equal(cm.Transform))

	data, err := store.Read(context.Background(), "/assets/Root.tscn")
	require.NoError(t, err)
	saved, err := scenefile.DecodeTree(scenefile.TSCN{}, data)
	require.NoError(t, err)
	assert.True(t, root.Equal(saved))
}

func TestPostImport_WrongKind(t *testing.T) {
	imp, _, logs := newImporter(t)
	root := cubeScene(domain.KindMeshInstance3D)
	before := root.Clone()

	res := imp.PostImport(context.Background(), root, ports.StaticSource("/assets/cube.glb"))

	require.NoError(t, res.Err, "warnings are not errors")
	assert.Equal(t, 0, res.Replaced)
	assert.True(t, before.Equal(root))
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, domain.WarningUnsupportedNodeKind, res.Warnings[0].Code)
	assert.Equal(t, "Cube_CM", res.Warnings[0].Name)
	assert.Equal(t, domain.WarningNoMatchesFound, res.Warnings[1].Code)
	assert.Contains(t, logs.String(), "matches tag but is not a collision volume")
	assert.Equal(t, "/assets/Root.tscn", res.SavePath, "the tree is saved anyway")
}

func TestPostImport_SaveDisabled(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.SaveAsTSCN = false
	imp, store, _ := newImporter(t, sceneswap.WithConfig(cfg))

	res := imp.PostImport(context.Background(), cubeScene(domain.KindStaticBody3D), nil)

	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Replaced)
	assert.Nil(t, res.Save)
	assert.Empty(t, store.Files())
}

func TestPostImport_UnresolvableSource(t *testing.T) {
	imp, store, logs := newImporter(t)
	failing := ports.SourceResolverFunc(func(context.Context) (string, error) {
		return "", errors.New("asset has no backing file")
	})

	for name, src := range map[string]ports.SourceResolver{
		"empty":   ports.StaticSource(""),
		"failing": failing,
		"nil":     nil,
	} {
		t.Run(name, func(t *testing.T) {
			root := cubeScene(domain.KindStaticBody3D)
			res := imp.PostImport(context.Background(), root, src)

			assert.ErrorIs(t, res.Err, domain.ErrInvalidSourcePath)
			assert.Same(t, root, res.Root)
			assert.Equal(t, 1, res.Replaced, "transform results are kept")
			assert.Nil(t, res.Save)
		})
	}
	assert.Empty(t, store.Files())
	assert.Contains(t, logs.String(), "Could not resolve source file")
}

func TestPostImport_EmptyRootName(t *testing.T) {
	imp, store, _ := newImporter(t)
	root := cubeScene(domain.KindStaticBody3D)
	root.Name = ""

	res := imp.PostImport(context.Background(), root, ports.StaticSource("/assets/cube.glb"))

	assert.ErrorIs(t, res.Err, domain.ErrInvalidSceneName)
	assert.Empty(t, store.Files())
}

func TestPostImport_DirectoryFailure(t *testing.T) {
	store := memory.NewStore(memory.WithDeniedDirs("/locked"))
	imp, err := sceneswap.New(sceneswap.WithStore(store))
	require.NoError(t, err)

	res := imp.PostImport(context.Background(), cubeScene(domain.KindStaticBody3D), ports.StaticSource("/locked/levels/cube.glb"))

	assert.ErrorIs(t, res.Err, domain.ErrDirectoryCreateFailed)
	assert.ErrorIs(t, res.Err, domain.ErrWriteFailed)
	assert.Empty(t, res.SavePath)
	assert.NotNil(t, res.Root)
	assert.Empty(t, store.Files())
}

func TestPostImport_PackFailure(t *testing.T) {
	imp, store, _ := newImporter(t)
	root := cubeScene(domain.KindStaticBody3D)
	root.AddChild(domain.NewNode("Cube:1", domain.KindNode3D))

	res := imp.PostImport(context.Background(), root, ports.StaticSource("/assets/cube.glb"))

	assert.ErrorIs(t, res.Err, domain.ErrPackFailed)
	assert.Equal(t, 1, res.Replaced)
	assert.False(t, res.Save.Write.Attempted)
	assert.Empty(t, store.Files())
}

func TestPostImport_NilRoot(t *testing.T) {
	imp, _, _ := newImporter(t)
	res := imp.PostImport(context.Background(), nil, ports.StaticSource("/a/b.glb"))
	assert.ErrorIs(t, res.Err, domain.ErrNilRoot)
}

func TestPostImport_DebugChannel(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.DebugMode = false
	imp, _, quiet := newImporter(t, sceneswap.WithConfig(cfg))
	imp.PostImport(context.Background(), cubeScene(domain.KindStaticBody3D), ports.StaticSource("/a/cube.glb"))
	assert.NotContains(t, quiet.String(), "Replaced node")
	assert.NotContains(t, quiet.String(), "Resolved save path")

	imp, _, verbose := newImporter(t)
	imp.PostImport(context.Background(), cubeScene(domain.KindStaticBody3D), ports.StaticSource("/a/cube.glb"))
	assert.Contains(t, verbose.String(), "Replaced node")
	assert.Contains(t, verbose.String(), "Resolved save path")
}

func TestPostImport_LifecycleHooks(t *testing.T) {
	var replaced, skipped int
	var steps []domain.Step
	imp, _, _ := newImporter(t, sceneswap.WithLifecycleHooks(domain.LifecycleHooks{
		OnNodeReplaced: func(context.Context, *domain.ReplaceEvent) { replaced++ },
		OnNodeSkipped:  func(context.Context, *domain.WarningEvent) { skipped++ },
		OnSaveStep:     func(_ context.Context, e *domain.SaveEvent) { steps = append(steps, e.Step) },
	}))

	root := cubeScene(domain.KindStaticBody3D)
	root.AddChild(domain.NewNode("Lamp_CM", "Light3D"))
	res := imp.PostImport(context.Background(), root, ports.StaticSource("/a/cube.glb"))

	require.NoError(t, res.Err)
	assert.Equal(t, 1, replaced)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []domain.Step{domain.StepDirectory, domain.StepPack, domain.StepWrite}, steps)
}

func TestPostImport_Idempotent(t *testing.T) {
	imp, _, _ := newImporter(t)
	root := cubeScene(domain.KindStaticBody3D)

	first := imp.PostImport(context.Background(), root, ports.StaticSource("/a/cube.glb"))
	require.NoError(t, first.Err)
	second := imp.PostImport(context.Background(), root, ports.StaticSource("/a/cube.glb"))
	require.NoError(t, second.Err)

	assert.Equal(t, 1, first.Replaced)
	assert.Equal(t, 0, second.Replaced)
}

func TestPostImport_WritesToDisk(t *testing.T) {
	dir := t.TempDir()
	imp, err := sceneswap.New()
	require.NoError(t, err)

	source := filepath.Join(dir, "new", "nested", "cube.glb")
	res := imp.PostImport(context.Background(), cubeScene(domain.KindStaticBody3D), ports.StaticSource(source))
	require.NoError(t, res.Err)

	data, err := os.ReadFile(filepath.Join(dir, "new", "nested", "Root.tscn"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[gd_scene format=3]"))
	assert.Contains(t, string(data), `[node name="Cube_CM" type="Area3D" parent="Cube"]`)
}

func TestNew_Validation(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.TriggerKind = domain.KindStaticBody3D
	_, err := sceneswap.New(sceneswap.WithConfig(cfg))
	assert.ErrorContains(t, err, "collision volume")

	cfg = domain.DefaultConfig()
	cfg.SceneFormat = "fbx"
	_, err = sceneswap.New(sceneswap.WithConfig(cfg))
	assert.Error(t, err)

	cfg = domain.DefaultConfig()
	cfg.SceneFormat = "json"
	cfg.TriggerKind = ""
	imp, err := sceneswap.New(sceneswap.WithConfig(cfg), sceneswap.WithStore(memory.NewStore()))
	require.NoError(t, err)
	assert.Equal(t, domain.KindArea3D, imp.Config().TriggerKind)

	res := imp.PostImport(context.Background(), cubeScene(domain.KindStaticBody3D), ports.StaticSource("/x/cube.glb"))
	require.NoError(t, res.Err)
	assert.Equal(t, "/x/Root.json", res.SavePath)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(sceneswap.Version))
}

func TestPostImport_DuplicateSiblingNamesAreSaved(t *testing.T) {
	imp, store, _ := newImporter(t)
	root := domain.NewNode("Yard", domain.KindNode3D)
	root.AddChild(domain.NewNode("Box_CM", domain.KindStaticBody3D))
	root.AddChild(domain.NewNode("Box_CM", domain.KindStaticBody3D))

	res := imp.PostImport(context.Background(), root, ports.StaticSource("/assets/yard.glb"))
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Replaced)
	assert.Equal(t, "Box_CM", root.Child(1).Name)

	data, err := store.Read(context.Background(), "/assets/Yard.tscn")
	require.NoError(t, err)
	back, err := scenefile.DecodeTree(scenefile.TSCN{}, data)
	require.NoError(t, err)
	require.Equal(t, 2, back.NumChildren())
	assert.Equal(t, "Box_CM", back.Child(0).Name)
	assert.Equal(t, "Box_CM2", back.Child(1).Name)
	assert.Equal(t, domain.KindArea3D, back.Child(1).Kind)
}
