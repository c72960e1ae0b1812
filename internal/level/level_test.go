package level

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sampleProject has two levels. The "Collisions" layer of Level_0 is:
//
//	# # ~
//	# . ~
//	# # ~
//
// with "#" being walls and "~" water.
const sampleProject = `{
  "jsonVersion": "1.5.3",
  "defs": {
    "layers": [
      {"uid": 1, "identifier": "Collisions", "type": "IntGrid", "gridSize": 16,
       "intGridValues": [{"value": 1, "identifier": "walls"}, {"value": 2, "identifier": "water"}]},
      {"uid": 2, "identifier": "Decor", "type": "IntGrid", "gridSize": 8,
       "intGridValues": [{"value": 1, "identifier": "clouds"}]},
      {"uid": 3, "identifier": "Tiles", "type": "Tiles", "gridSize": 16, "intGridValues": []}
    ]
  },
  "levels": [
    {"identifier": "Level_0", "layerInstances": [
      {"__identifier": "Tiles", "__type": "Tiles", "__cWid": 3, "__cHei": 3, "__gridSize": 16,
       "intGridCsv": [], "layerDefUid": 3},
      {"__identifier": "Collisions", "__type": "IntGrid", "__cWid": 3, "__cHei": 3, "__gridSize": 16,
       "intGridCsv": [1, 1, 2, 1, 0, 2, 1, 1, 2], "layerDefUid": 1},
      {"__identifier": "Decor", "__type": "IntGrid", "__cWid": 2, "__cHei": 1, "__gridSize": 8,
       "intGridCsv": [0, 1], "layerDefUid": 2}
    ]},
    {"identifier": "Level_1", "layerInstances": []}
  ]
}`

func parseSample(t *testing.T) *Project {
	p, err := Parse(strings.NewReader(sampleProject))
	require.NoError(t, err)
	return p
}

func TestParse(t *testing.T) {
	p := parseSample(t)
	assert.Equal(t, []string{"Level_0", "Level_1"}, p.LevelNames())

	level, err := p.Level("Level_0")
	require.NoError(t, err)
	require.Len(t, level.Layers, 2, "only IntGrid layers are kept")

	layer, err := level.Layer("Collisions")
	require.NoError(t, err)
	assert.Equal(t, 3, layer.Width)
	assert.Equal(t, 3, layer.Height)
	assert.Equal(t, 16, layer.CellSize)
	assert.Equal(t, []string{"walls", "water"}, layer.Categories())
	assert.Equal(t, "walls", layer.Category(0, 0))
	assert.Equal(t, "", layer.Category(1, 1))
	assert.Equal(t, "water", layer.Category(2, 1))
	assert.Equal(t, "", layer.Category(-1, 0))
	assert.Equal(t, "", layer.Category(0, 3))

	_, err = level.Layer("Tiles")
	assert.Error(t, err)
	_, err = p.Level("Level_9")
	assert.ErrorContains(t, err, "Level_9")
}

func TestOccupancy(t *testing.T) {
	level, err := parseSample(t).Level("Level_0")
	require.NoError(t, err)
	layer, err := level.Layer("Collisions")
	require.NoError(t, err)

	walls := layer.Occupancy([]string{"walls"})
	var got []string
	for y := -1; y <= 3; y++ {
		var row strings.Builder
		for x := -1; x <= 3; x++ {
			if walls.Solid(x, y) {
				row.WriteByte('#')
			} else {
				row.WriteByte('.')
			}
		}
		got = append(got, row.String())
	}
	assert.Equal(t, []string{
		".....",
		".##..",
		".#...",
		".##..",
		".....",
	}, got)

	both := layer.Occupancy([]string{"walls", "water"})
	assert.True(t, both.Solid(2, 2))
	assert.False(t, both.Solid(1, 1))
}

func TestCollisionLayers(t *testing.T) {
	level, err := parseSample(t).Level("Level_0")
	require.NoError(t, err)

	layers, err := level.CollisionLayers([]string{"walls"})
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, "Collisions", layers[0].Name)

	layers, err = level.CollisionLayers([]string{"walls", "clouds"})
	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, "Decor", layers[1].Name)

	_, err = level.CollisionLayers([]string{"walls", "lava"})
	assert.ErrorContains(t, err, `"lava"`)
}

func TestParseErrors(t *testing.T) {
	for name, text := range map[string]string{
		"not json": `{"levels": [`,
		"short csv": `{"defs": {"layers": [{"uid": 1}]}, "levels": [{"identifier": "L", "layerInstances": [
			{"__identifier": "C", "__type": "IntGrid", "__cWid": 2, "__cHei": 2, "__gridSize": 8,
			 "intGridCsv": [1, 0, 1], "layerDefUid": 1}]}]}`,
		"bad cell size": `{"defs": {"layers": [{"uid": 1}]}, "levels": [{"identifier": "L", "layerInstances": [
			{"__identifier": "C", "__type": "IntGrid", "__cWid": 1, "__cHei": 1, "__gridSize": 0,
			 "intGridCsv": [1], "layerDefUid": 1}]}]}`,
		"unknown def": `{"defs": {"layers": []}, "levels": [{"identifier": "L", "layerInstances": [
			{"__identifier": "C", "__type": "IntGrid", "__cWid": 1, "__cHei": 1, "__gridSize": 8,
			 "intGridCsv": [1], "layerDefUid": 7}]}]}`,
	} {
		_, err := Parse(strings.NewReader(text))
		assert.Errorf(t, err, "%s: expected an error", name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.ldtk")
	require.NoError(t, os.WriteFile(path, []byte(sampleProject), 0o644))
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.Path)
	assert.Len(t, p.Levels, 2)

	_, err = Load(filepath.Join(t.TempDir(), "nope.ldtk"))
	assert.ErrorContains(t, err, "nope.ldtk")
}
