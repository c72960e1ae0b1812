// Package collider turns the boundary loops of a tile layer into static one-sided chain shapes of
// a physics world.
package collider

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/janpfeifer/tilechains/internal/generics"
	"github.com/janpfeifer/tilechains/internal/grid"
	"github.com/janpfeifer/tilechains/internal/outline"
	"github.com/janpfeifer/tilechains/internal/physics"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultMaterial of the level's surfaces.
var DefaultMaterial = physics.SurfaceMaterial{Friction: 0.1, Restitution: 0.1}

// Config of an Emitter.
type Config struct {
	// CellSize of the layer, in source pixels.
	CellSize int

	// Scale from source pixels to display pixels.
	Scale float32

	// Units converts display pixels to the physics engine's meters.
	Units physics.Units

	// Material used for every segment.
	Material physics.SurfaceMaterial
}

// DefaultConfig returns a Config for the given cell size, with scale 1, default units and
// DefaultMaterial.
func DefaultConfig(cellSize int) Config {
	return Config{
		CellSize: cellSize,
		Scale:    1,
		Units:    physics.DefaultUnits(),
		Material: DefaultMaterial,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.CellSize <= 0 {
		return errors.Errorf("invalid cell size %d, it must be > 0", c.CellSize)
	}
	if c.Scale <= 0 {
		return errors.Errorf("invalid scale %g, it must be > 0", c.Scale)
	}
	return c.Units.Validate()
}

// Emitter creates the colliders of tile layers in a physics world.
type Emitter struct {
	world physics.World
	cfg   Config
}

// New creates an Emitter that adds bodies to world.
func New(world physics.World, cfg Config) (*Emitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, "collider configuration")
	}
	return &Emitter{world: world, cfg: cfg}, nil
}

// Config returns the emitter's configuration.
func (e *Emitter) Config() Config {
	return e.cfg
}

// ToPixels converts a lattice corner to display pixels.
func (e *Emitter) ToPixels(p grid.Point) mgl32.Vec2 {
	factor := float32(e.cfg.CellSize) * e.cfg.Scale
	return mgl32.Vec2{float32(p.X()) * factor, float32(p.Y()) * factor}
}

// ToMeters converts a lattice corner to world coordinates, in meters.
func (e *Emitter) ToMeters(p grid.Point) mgl32.Vec2 {
	return e.cfg.Units.ToMeters(e.ToPixels(p))
}

// WorldLoop converts a loop of lattice corners to world coordinates.
func (e *Emitter) WorldLoop(loop outline.Loop) []mgl32.Vec2 {
	return generics.SliceMap(loop, e.ToMeters)
}

// LayerBody holds what was created for one layer.
type LayerBody struct {
	Layer  string
	Body   physics.BodyID
	Chains []physics.ChainID
}

// Emit creates one static body for the layer, at the origin, and one closed chain per loop.
//
// The loops must be reduced and wound with the solid on their right (see outline.Tracer). The body
// is created even if there are no loops. On error, the body is destroyed and nothing is left in
// the world.
func (e *Emitter) Emit(layer string, loops []outline.Loop) (*LayerBody, error) {
	for ii, loop := range loops {
		if len(loop) < physics.MinChainPoints {
			return nil, errors.Errorf("layer %q: loop #%d has %d vertices, at least %d are required",
				layer, ii, len(loop), physics.MinChainPoints)
		}
	}

	body, err := e.world.CreateBody(physics.BodyDef{Type: physics.StaticBody, Name: layer})
	if err != nil {
		return nil, errors.WithMessagef(err, "layer %q: failed to create static body", layer)
	}
	lb := &LayerBody{Layer: layer, Body: body, Chains: make([]physics.ChainID, 0, len(loops))}
	for ii, loop := range loops {
		points := e.WorldLoop(loop)
		materials := make([]physics.SurfaceMaterial, len(points))
		for jj := range materials {
			materials[jj] = e.cfg.Material
		}
		chain, err := e.world.CreateChain(body, physics.ChainDef{
			Points:    points,
			Materials: materials,
			IsLoop:    true,
		})
		if err != nil {
			if destroyErr := e.world.DestroyBody(body); destroyErr != nil {
				klog.Errorf("layer %q: failed to destroy body after error: %v", layer, destroyErr)
			}
			return nil, errors.WithMessagef(err, "layer %q: failed to create chain for loop #%d", layer, ii)
		}
		lb.Chains = append(lb.Chains, chain)
	}
	klog.V(1).Infof("collider: layer %q: body #%d with %d chains", layer, body, len(lb.Chains))
	return lb, nil
}
