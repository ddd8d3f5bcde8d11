package scenefile_test

import (
	"testing"

	"github.com/aretw0/sceneswap/pkg/scenefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs_RoundTrip(t *testing.T) {
	for _, name := range scenefile.Names() {
		t.Run(name, func(t *testing.T) {
			c, err := scenefile.Lookup(name)
			require.NoError(t, err)

			data, err := scenefile.EncodeTree(c, levelTree())
			require.NoError(t, err)
			back, err := scenefile.DecodeTree(c, data)
			require.NoError(t, err)
			assert.True(t, levelTree().Equal(back))
		})
	}
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"json", "tscn", "yaml"}, scenefile.Names())

	c, err := scenefile.Lookup("TSCN")
	require.NoError(t, err)
	assert.Equal(t, ".tscn", c.Extension())

	_, err = scenefile.Lookup("fbx")
	assert.ErrorContains(t, err, "unknown scene format")
}

func TestForPath(t *testing.T) {
	for path, want := range map[string]string{
		"a/level.tscn": "tscn",
		"level.JSON":   "json",
		"level.yml":    "yaml",
		"level.yaml":   "yaml",
	} {
		c, err := scenefile.ForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, c.Name(), path)
	}
	_, err := scenefile.ForPath("level.glb")
	assert.Error(t, err)
}

func TestYAML_HandWrittenDump(t *testing.T) {
	src := `
nodes:
  - name: Level
    kind: Node3D
  - name: Wall_CM
    kind: StaticBody3D
    parent: "."
    transform:
      basis: [1, 0, 0, 0, 1, 0, 0, 0, 1]
      origin: [4, 0, -2]
    props:
      friction: 0.8
`
	root, err := scenefile.DecodeTree(scenefile.YAML{}, []byte(src))
	require.NoError(t, err)

	assert.True(t, root.Transform.IsIdentity(), "omitted transform is the identity")
	wall := root.Child(0)
	require.NotNil(t, wall)
	assert.Equal(t, float32(4), wall.Transform.Origin[0])
	assert.Equal(t, 0.8, wall.Props["friction"])
}

func TestJSON_NumbersKeepTheirType(t *testing.T) {
	src := `{"nodes":[{"name":"R","kind":"Node3D","props":{"layer":3,"mass":2.5}}]}`
	root, err := scenefile.DecodeTree(scenefile.JSON{}, []byte(src))
	require.NoError(t, err)

	assert.Equal(t, int64(3), root.Props["layer"])
	assert.Equal(t, 2.5, root.Props["mass"])
	assert.True(t, root.Transform.IsIdentity())
}
