package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func square() []mgl32.Vec2 {
	return []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
}

func TestChainDefValidate(t *testing.T) {
	def := ChainDef{Points: square(), IsLoop: true}
	assert.NoError(t, def.Validate())

	def.Materials = []SurfaceMaterial{DefaultSurfaceMaterial()}
	assert.NoError(t, def.Validate())

	def.Materials = make([]SurfaceMaterial, 4)
	assert.NoError(t, def.Validate())

	def.Materials = make([]SurfaceMaterial, 3)
	assert.Error(t, def.Validate())

	def = ChainDef{Points: square()[:2], IsLoop: true}
	assert.Error(t, def.Validate())

	def.IsLoop = false
	assert.NoError(t, def.Validate())
	def.Materials = make([]SurfaceMaterial, 1)
	assert.NoError(t, def.Validate())
}

func TestUnits(t *testing.T) {
	u := DefaultUnits()
	require.NoError(t, u.Validate())
	meters := u.ToMeters(mgl32.Vec2{60, 15})
	assert.InDelta(t, 2.0, meters.X(), 1e-6)
	assert.InDelta(t, 0.5, meters.Y(), 1e-6)
	pixels := u.ToPixels(meters)
	assert.InDelta(t, 60.0, pixels.X(), 1e-4)
	assert.InDelta(t, 15.0, pixels.Y(), 1e-4)

	assert.Error(t, Units{}.Validate())
	assert.Error(t, Units{PixelsPerMeter: -1}.Validate())
}

func TestMemoryWorld(t *testing.T) {
	w := NewMemoryWorld()
	body, err := w.CreateBody(BodyDef{Type: StaticBody, Name: "walls"})
	require.NoError(t, err)
	assert.NotEqual(t, NullBody, body)
	assert.Equal(t, "Static", w.Body(body).Def.Type.String())

	points := square()
	chain, err := w.CreateChain(body, ChainDef{Points: points, IsLoop: true})
	require.NoError(t, err)
	points[0] = mgl32.Vec2{100, 100}
	assert.Equal(t, mgl32.Vec2{0, 0}, w.Chain(chain).Def.Points[0], "points must be copied")
	assert.Equal(t, []ChainID{chain}, w.Body(body).Chains)
	assert.Equal(t, 1, w.NumChains())
	assert.Equal(t, 4, w.NumSegments())

	// Invalid chains and unknown bodies.
	_, err = w.CreateChain(body, ChainDef{Points: square()[:2], IsLoop: true})
	assert.Error(t, err)
	_, err = w.CreateChain(BodyID(42), ChainDef{Points: square(), IsLoop: true})
	assert.Error(t, err)

	other, err := w.CreateBody(BodyDef{Type: StaticBody, Name: "clouds"})
	require.NoError(t, err)
	bodies := w.Bodies()
	require.Len(t, bodies, 2)
	assert.Equal(t, body, bodies[0].ID)
	assert.Equal(t, other, bodies[1].ID)

	require.NoError(t, w.DestroyBody(body))
	assert.Nil(t, w.Body(body))
	assert.Nil(t, w.Chain(chain))
	assert.Equal(t, 0, w.NumChains())
	assert.Error(t, w.DestroyBody(body))
}
