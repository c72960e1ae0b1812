package physics

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"slices"
)

// Body as recorded by MemoryWorld.
type Body struct {
	ID     BodyID
	Def    BodyDef
	Chains []ChainID
}

// Chain as recorded by MemoryWorld.
type Chain struct {
	ID   ChainID
	Body BodyID
	Def  ChainDef
}

// MemoryWorld is a World that only records bodies and chains.
type MemoryWorld struct {
	bodies      map[BodyID]*Body
	chains      map[ChainID]*Chain
	lastBodyID  BodyID
	lastChainID ChainID
}

var _ World = (*MemoryWorld)(nil)

// NewMemoryWorld creates an empty MemoryWorld.
func NewMemoryWorld() *MemoryWorld {
	return &MemoryWorld{
		bodies: make(map[BodyID]*Body),
		chains: make(map[ChainID]*Chain),
	}
}

// CreateBody implements World.
func (w *MemoryWorld) CreateBody(def BodyDef) (BodyID, error) {
	w.lastBodyID++
	id := w.lastBodyID
	w.bodies[id] = &Body{ID: id, Def: def}
	klog.V(2).Infof("physics: created %s body #%d %q at %v", def.Type, id, def.Name, def.Position)
	return id, nil
}

// CreateChain implements World. Points and materials are copied.
func (w *MemoryWorld) CreateChain(bodyID BodyID, def ChainDef) (ChainID, error) {
	body, found := w.bodies[bodyID]
	if !found {
		return 0, errors.Errorf("physics: cannot create chain on unknown body #%d", bodyID)
	}
	if err := def.Validate(); err != nil {
		return 0, errors.WithMessagef(err, "physics: body #%d %q", bodyID, body.Def.Name)
	}
	def.Points = slices.Clone(def.Points)
	def.Materials = slices.Clone(def.Materials)
	w.lastChainID++
	id := w.lastChainID
	w.chains[id] = &Chain{ID: id, Body: bodyID, Def: def}
	body.Chains = append(body.Chains, id)
	return id, nil
}

// DestroyBody implements World. It also destroys the body's chains.
func (w *MemoryWorld) DestroyBody(bodyID BodyID) error {
	body, found := w.bodies[bodyID]
	if !found {
		return errors.Errorf("physics: cannot destroy unknown body #%d", bodyID)
	}
	for _, chainID := range body.Chains {
		delete(w.chains, chainID)
	}
	delete(w.bodies, bodyID)
	return nil
}

// Body returns the recorded body, or nil if it doesn't exist.
func (w *MemoryWorld) Body(id BodyID) *Body {
	return w.bodies[id]
}

// Chain returns the recorded chain, or nil if it doesn't exist.
func (w *MemoryWorld) Chain(id ChainID) *Chain {
	return w.chains[id]
}

// Bodies returns all bodies, in creation order.
func (w *MemoryWorld) Bodies() []*Body {
	bodies := make([]*Body, 0, len(w.bodies))
	for _, body := range w.bodies {
		bodies = append(bodies, body)
	}
	slices.SortFunc(bodies, func(a, b *Body) int { return int(a.ID - b.ID) })
	return bodies
}

// NumChains returns the number of chains in the world.
func (w *MemoryWorld) NumChains() int {
	return len(w.chains)
}

// NumSegments returns the total number of chain segments in the world.
func (w *MemoryWorld) NumSegments() (count int) {
	for _, chain := range w.chains {
		n := len(chain.Def.Points)
		if !chain.Def.IsLoop {
			n--
		}
		count += n
	}
	return
}
