// Package build creates the colliders of a level: for each collision layer it traces the boundary
// loops of the solid cells and emits them as chains into a physics world.
package build

import (
	"context"
	"fmt"
	"github.com/janpfeifer/tilechains/internal/collider"
	"github.com/janpfeifer/tilechains/internal/config"
	"github.com/janpfeifer/tilechains/internal/level"
	"github.com/janpfeifer/tilechains/internal/outline"
	"github.com/janpfeifer/tilechains/internal/physics"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"runtime"
	"strings"
	"time"
)

// LayerResult holds what was built for one collision layer.
type LayerResult struct {
	Layer *level.Layer

	// Loops traced from the layer, in cell corner coordinates.
	Loops []outline.Loop

	Stats outline.Stats

	// Body created for the layer, with one chain per loop.
	Body *collider.LayerBody
}

// Result of building one level.
type Result struct {
	Level  string
	Layers []*LayerResult

	// World where the bodies were created.
	World physics.World

	Elapsed time.Duration
}

// NumChains returns the total number of chains created.
func (r *Result) NumChains() (count int) {
	for _, lr := range r.Layers {
		count += len(lr.Body.Chains)
	}
	return
}

// Dropped returns whether geometry was dropped in any layer.
func (r *Result) Dropped() bool {
	for _, lr := range r.Layers {
		if lr.Stats.Dropped() {
			return true
		}
	}
	return false
}

// String returns a one line per layer summary.
func (r *Result) String() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "Level %q: %d layers, %d chains (%s)\n", r.Level, len(r.Layers), r.NumChains(), r.Elapsed)
	for _, lr := range r.Layers {
		_, _ = fmt.Fprintf(&sb, "  - %s (%dx%d, cell %dpx): %s\n",
			lr.Layer.Name, lr.Layer.Width, lr.Layer.Height, lr.Layer.CellSize, lr.Stats)
	}
	return sb.String()
}

// Level builds the colliders of every collision layer of lvl into world.
//
// The collision layers are the IntGrid layers that define at least one of cfg.Collision categories.
func Level(world physics.World, lvl *level.Level, cfg *config.Config) (*Result, error) {
	start := time.Now()
	layers, err := lvl.CollisionLayers(cfg.Collision)
	if err != nil {
		return nil, err
	}
	tracer := outline.New()
	tracer.MaxLoopVertices = cfg.MaxLoopVertices
	r := &Result{Level: lvl.Name, World: world}
	for _, layer := range layers {
		lr, err := Layer(world, tracer, layer, cfg)
		if err != nil {
			return nil, errors.WithMessagef(err, "level %q", lvl.Name)
		}
		r.Layers = append(r.Layers, lr)
	}
	r.Elapsed = time.Since(start)
	klog.V(1).Infof("build: level %q: %d layers, %d chains in %s", lvl.Name, len(r.Layers), r.NumChains(), r.Elapsed)
	return r, nil
}

// Layer traces one layer and emits its loops into world.
func Layer(world physics.World, tracer *outline.Tracer, layer *level.Layer, cfg *config.Config) (*LayerResult, error) {
	emitter, err := collider.New(world, cfg.Collider(layer.CellSize))
	if err != nil {
		return nil, errors.WithMessagef(err, "layer %q", layer.Name)
	}
	traced := tracer.Trace(layer.Width, layer.Height, layer.Occupancy(cfg.Collision))
	klog.V(1).Infof("build: layer %q: %s", layer.Name, traced.Stats)
	body, err := emitter.Emit(layer.Name, traced.Loops)
	if err != nil {
		return nil, err
	}
	return &LayerResult{Layer: layer, Loops: traced.Loops, Stats: traced.Stats, Body: body}, nil
}

// Levels builds the named levels of the project concurrently, each into its own world created by
// newWorld. If parallelism <= 0, GOMAXPROCS is used.
//
// Results are returned in the order of names. The first error cancels the levels not yet started.
func Levels(ctx context.Context, project *level.Project, names []string, cfg *config.Config,
	parallelism int, newWorld func() physics.World) ([]*Result, error) {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	levels := make([]*level.Level, len(names))
	for ii, name := range names {
		var err error
		if levels[ii], err = project.Level(name); err != nil {
			return nil, err
		}
	}

	results := make([]*Result, len(names))
	wg, ctx := errgroup.WithContext(ctx)
	wg.SetLimit(parallelism)
	for ii, lvl := range levels {
		wg.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var err error
			results[ii], err = Level(newWorld(), lvl, cfg)
			return err
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
