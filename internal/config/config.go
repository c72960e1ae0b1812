// Package config holds the configuration of a level build: which project and levels to load, which
// IntGrid categories are solid, and how to scale the result into the physics world.
//
// The configuration is read from a YAML file (see Load), and can be overridden with a
// `key=value,...` string (see ApplyOverrides):
//
//   - project: path to the LDtk project file.
//   - level: level names to build, separated by ";".
//   - collision: IntGrid category names that are solid, separated by ";".
//   - scale: display scale applied to the source pixels.
//   - pixels_per_meter: conversion from display pixels to meters.
//   - friction, restitution: surface material of every chain segment.
//   - max_loop_vertices: safety bound of a single boundary walk. 0 uses the default.
package config

import (
	"bytes"
	"github.com/janpfeifer/tilechains/internal/collider"
	"github.com/janpfeifer/tilechains/internal/parameters"
	"github.com/janpfeifer/tilechains/internal/physics"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"strconv"
)

// Config of a level build.
type Config struct {
	// Project is the path to the LDtk project file. Relative paths are relative to the current
	// directory.
	Project string `yaml:"project,omitempty"`

	// Levels to build.
	Levels []string `yaml:"levels,omitempty"`

	// Collision lists the IntGrid category names that are solid.
	Collision []string `yaml:"collision"`

	// Scale from source pixels to display pixels.
	Scale float32 `yaml:"scale"`

	physics.Units `yaml:",inline"`

	Material physics.SurfaceMaterial `yaml:"material"`

	// MaxLoopVertices bounds a single boundary walk. 0 means outline.DefaultMaxLoopVertices.
	MaxLoopVertices int `yaml:"max_loop_vertices"`
}

// Default returns the default configuration. Project and Levels are left empty.
func Default() *Config {
	return &Config{
		Collision: []string{"walls"},
		Scale:     4,
		Units:     physics.DefaultUnits(),
		Material:  collider.DefaultMaterial,
	}
}

// Load reads the YAML configuration file at path on top of the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open configuration file %q", path)
	}
	defer func() { _ = f.Close() }()
	cfg, err := Parse(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "configuration file %q", path)
	}
	return cfg, nil
}

// Parse reads a YAML configuration on top of the defaults. Unknown fields are an error.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to parse YAML configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides parses a `key=value,...` string and overrides the corresponding fields. Unknown
// keys are an error.
func (c *Config) ApplyOverrides(overrides string) error {
	params := parameters.NewFromConfigString(overrides)
	var err error
	if c.Project, err = parameters.PopParamOr(params, "project", c.Project); err != nil {
		return err
	}
	if levels := parameters.PopList(params, "level", ";"); levels != nil {
		c.Levels = levels
	}
	if collision := parameters.PopList(params, "collision", ";"); collision != nil {
		c.Collision = collision
	}
	if c.Scale, err = parameters.PopParamOr(params, "scale", c.Scale); err != nil {
		return err
	}
	if c.PixelsPerMeter, err = parameters.PopParamOr(params, "pixels_per_meter", c.PixelsPerMeter); err != nil {
		return err
	}
	if c.Material.Friction, err = parameters.PopParamOr(params, "friction", c.Material.Friction); err != nil {
		return err
	}
	if c.Material.Restitution, err = parameters.PopParamOr(params, "restitution", c.Material.Restitution); err != nil {
		return err
	}
	if c.MaxLoopVertices, err = parameters.PopParamOr(params, "max_loop_vertices", c.MaxLoopVertices); err != nil {
		return err
	}
	if err = parameters.CheckEmpty(params); err != nil {
		return errors.WithMessage(err, "invalid configuration overrides")
	}
	return c.Validate()
}

// Validate checks the values that don't depend on the project.
func (c *Config) Validate() error {
	if len(c.Collision) == 0 {
		return errors.New("no collision categories configured")
	}
	if c.Scale <= 0 {
		return errors.Errorf("invalid scale %g, it must be > 0", c.Scale)
	}
	if err := c.Units.Validate(); err != nil {
		return err
	}
	if c.Material.Friction < 0 || c.Material.Restitution < 0 {
		return errors.Errorf("invalid material %+v, friction and restitution must be >= 0", c.Material)
	}
	if c.MaxLoopVertices < 0 {
		return errors.Errorf("invalid max_loop_vertices %d, it must be >= 0", c.MaxLoopVertices)
	}
	return nil
}

// Collider returns the emitter configuration for a layer with the given cell size.
func (c *Config) Collider(cellSize int) collider.Config {
	return collider.Config{
		CellSize: cellSize,
		Scale:    c.Scale,
		Units:    c.Units,
		Material: c.Material,
	}
}

// String returns the configuration as YAML.
func (c *Config) String() string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return "config: " + strconv.Quote(err.Error())
	}
	_ = enc.Close()
	return buf.String()
}
