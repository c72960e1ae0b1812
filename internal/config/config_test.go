package config

import (
	"github.com/janpfeifer/tilechains/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
project: assets/world.ldtk
levels: [Level_0, Level_1]
collision:
  - walls
  - clouds
scale: 2
pixels_per_meter: 16
material:
  friction: 0.5
  restitution: 0
max_loop_vertices: 5000
`

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Project:         "assets/world.ldtk",
		Levels:          []string{"Level_0", "Level_1"},
		Collision:       []string{"walls", "clouds"},
		Scale:           2,
		Units:           physics.Units{PixelsPerMeter: 16},
		Material:        physics.SurfaceMaterial{Friction: 0.5},
		MaxLoopVertices: 5000,
	}, cfg)

	// Empty input: defaults.
	cfg, err = Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, []string{"walls"}, cfg.Collision)
	assert.Equal(t, float32(4), cfg.Scale)
	assert.Equal(t, float32(0.1), cfg.Material.Friction)

	// Partial input keeps other defaults.
	cfg, err = Parse(strings.NewReader("project: x.ldtk\n"))
	require.NoError(t, err)
	assert.Equal(t, "x.ldtk", cfg.Project)
	assert.Equal(t, float32(physics.DefaultPixelsPerMeter), cfg.PixelsPerMeter)
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{
		"unknown_field: 1\n",
		"scale: [1, 2]\n",
		"scale: 0\n",
		"collision: []\n",
		"pixels_per_meter: -3\n",
		"max_loop_vertices: -1\n",
		"material:\n  friction: -1\n",
	} {
		_, err := Parse(strings.NewReader(text))
		assert.Errorf(t, err, "configuration %q should have failed", text)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilechains.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Level_0", "Level_1"}, cfg.Levels)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "missing.yaml")
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyOverrides(
		"project=a.ldtk,level=L1;L2,collision=rock,scale=1.5,pixels_per_meter=64,friction=0.2,restitution=0.3,max_loop_vertices=10"))
	assert.Equal(t, &Config{
		Project:         "a.ldtk",
		Levels:          []string{"L1", "L2"},
		Collision:       []string{"rock"},
		Scale:           1.5,
		Units:           physics.Units{PixelsPerMeter: 64},
		Material:        physics.SurfaceMaterial{Friction: 0.2, Restitution: 0.3},
		MaxLoopVertices: 10,
	}, cfg)

	require.NoError(t, cfg.ApplyOverrides(""))
	assert.Equal(t, "a.ldtk", cfg.Project)

	assert.ErrorContains(t, Default().ApplyOverrides("scale=4,colour=red"), "colour")
	assert.Error(t, Default().ApplyOverrides("scale=big"))
	assert.Error(t, Default().ApplyOverrides("scale=-1"))
}

func TestColliderAndString(t *testing.T) {
	cfg := Default()
	cc := cfg.Collider(16)
	require.NoError(t, cc.Validate())
	assert.Equal(t, 16, cc.CellSize)
	assert.Equal(t, cfg.Scale, cc.Scale)
	assert.Equal(t, cfg.Material, cc.Material)

	text := cfg.String()
	assert.Contains(t, text, "pixels_per_meter: 30")
	parsed, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}
