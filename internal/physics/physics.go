// Package physics defines the boundary with the physics engine that receives the level colliders:
// body and chain definitions, surface materials, and the conversion between pixels and meters.
//
// MemoryWorld is an in-process World that validates and records what is created. It is used by
// the command-line tools and tests, and as a reference for adapters to real engines.
package physics

import (
	"fmt"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// BodyType of a physics body.
type BodyType uint8

const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

var bodyTypeNames = []string{"Static", "Kinematic", "Dynamic"}

// String returns the name of the body type.
func (t BodyType) String() string {
	if int(t) >= len(bodyTypeNames) {
		return fmt.Sprintf("BodyType(%d)", t)
	}
	return bodyTypeNames[t]
}

// BodyID identifies a body in a World. The zero value is not a valid body.
type BodyID int32

// NullBody is the invalid BodyID.
const NullBody BodyID = 0

// ChainID identifies a chain shape in a World. The zero value is not a valid chain.
type ChainID int32

// SurfaceMaterial of a shape's surface.
type SurfaceMaterial struct {
	Friction    float32 `yaml:"friction"`
	Restitution float32 `yaml:"restitution"`
}

// DefaultSurfaceMaterial returns the engine's defaults: some friction, no bounce.
func DefaultSurfaceMaterial() SurfaceMaterial {
	return SurfaceMaterial{Friction: 0.6, Restitution: 0}
}

// BodyDef describes a body to create.
type BodyDef struct {
	Type BodyType

	// Position of the body origin, in meters.
	Position mgl32.Vec2

	// Name is used for debugging only.
	Name string
}

// ChainDef describes a chain shape: connected segments, one-sided, with the solid on the right of
// the segments as they are listed (in y-down coordinates).
type ChainDef struct {
	// Points in meters, relative to the body origin.
	Points []mgl32.Vec2

	// Materials holds either one material for the whole chain, or one per segment.
	Materials []SurfaceMaterial

	// IsLoop connects the last point back to the first.
	IsLoop bool
}

// MinChainPoints is the minimum number of points of a closed chain.
const MinChainPoints = 3

// Validate checks the chain definition.
func (def *ChainDef) Validate() error {
	if def.IsLoop && len(def.Points) < MinChainPoints {
		return errors.Errorf("closed chain requires at least %d points, got %d", MinChainPoints, len(def.Points))
	}
	if !def.IsLoop && len(def.Points) < 2 {
		return errors.Errorf("open chain requires at least 2 points, got %d", len(def.Points))
	}
	numSegments := len(def.Points) - 1
	if def.IsLoop {
		numSegments = len(def.Points)
	}
	if n := len(def.Materials); n > 1 && n != numSegments {
		return errors.Errorf("chain with %d segments has %d materials: it must have either 1 or one per segment",
			numSegments, n)
	}
	return nil
}

// World is the physics engine collaborator: it only needs to create and destroy bodies and chains.
//
// Implementations are not expected to be safe for concurrent use.
type World interface {
	CreateBody(def BodyDef) (BodyID, error)
	CreateChain(body BodyID, def ChainDef) (ChainID, error)
	DestroyBody(body BodyID) error
}

// Units converts between pixels (the renderer's unit) and meters (the engine's unit).
type Units struct {
	// PixelsPerMeter, 30 by default.
	PixelsPerMeter float32 `yaml:"pixels_per_meter"`
}

// DefaultPixelsPerMeter used by DefaultUnits.
const DefaultPixelsPerMeter = 30

// DefaultUnits returns Units with DefaultPixelsPerMeter.
func DefaultUnits() Units {
	return Units{PixelsPerMeter: DefaultPixelsPerMeter}
}

// ToMeters converts a point in pixels to meters.
func (u Units) ToMeters(pixels mgl32.Vec2) mgl32.Vec2 {
	return pixels.Mul(1 / u.PixelsPerMeter)
}

// ToPixels converts a point in meters to pixels.
func (u Units) ToPixels(meters mgl32.Vec2) mgl32.Vec2 {
	return meters.Mul(u.PixelsPerMeter)
}

// Validate checks the conversion factor.
func (u Units) Validate() error {
	if u.PixelsPerMeter <= 0 {
		return errors.Errorf("invalid pixels_per_meter=%g, it must be > 0", u.PixelsPerMeter)
	}
	return nil
}
