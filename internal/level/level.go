// Package level loads tile-map projects saved by the LDtk editor, and classifies the cells of their
// IntGrid layers into an occupancy predicate.
//
// Only the subset of the format needed to build colliders is read: the IntGrid value definitions
// (value to category name) and, for each level, the IntGrid layer instances with their cell values.
package level

import (
	"encoding/json"
	"github.com/janpfeifer/tilechains/internal/generics"
	"github.com/janpfeifer/tilechains/internal/grid"
	"github.com/pkg/errors"
	"io"
	"k8s.io/klog/v2"
	"maps"
	"os"
	"slices"
)

// IntGridType is the layer type holding a category value per cell.
const IntGridType = "IntGrid"

// Project holds the levels of a tile-map project.
type Project struct {
	// Path the project was loaded from, if any.
	Path string

	Levels []*Level
}

// Level is one map of the project.
type Level struct {
	Name   string
	Layers []*Layer
}

// Layer is an IntGrid layer instance of a level.
type Layer struct {
	Name string

	// Width and Height in cells.
	Width, Height int

	// CellSize in source pixels.
	CellSize int

	// Values of the cells, row-major. 0 is the empty cell.
	Values []int

	// categories maps the cell values to their names.
	categories map[int]string
}

// JSON layout of the subset of the project that is read.
type (
	jsonProject struct {
		Defs   jsonDefs    `json:"defs"`
		Levels []jsonLevel `json:"levels"`
	}
	jsonDefs struct {
		Layers []jsonLayerDef `json:"layers"`
	}
	jsonLayerDef struct {
		UID           int            `json:"uid"`
		Identifier    string         `json:"identifier"`
		IntGridValues []jsonIntValue `json:"intGridValues"`
	}
	jsonIntValue struct {
		Value      int    `json:"value"`
		Identifier string `json:"identifier"`
	}
	jsonLevel struct {
		Identifier     string              `json:"identifier"`
		LayerInstances []jsonLayerInstance `json:"layerInstances"`
	}
	jsonLayerInstance struct {
		Identifier  string `json:"__identifier"`
		Type        string `json:"__type"`
		CWid        int    `json:"__cWid"`
		CHei        int    `json:"__cHei"`
		GridSize    int    `json:"__gridSize"`
		IntGridCsv  []int  `json:"intGridCsv"`
		LayerDefUID int    `json:"layerDefUid"`
	}
)

// Load reads the project file at path.
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open project file %q", path)
	}
	defer func() { _ = f.Close() }()
	p, err := Parse(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "project file %q", path)
	}
	p.Path = path
	return p, nil
}

// Parse reads a project from r.
func Parse(r io.Reader) (*Project, error) {
	var jp jsonProject
	if err := json.NewDecoder(r).Decode(&jp); err != nil {
		return nil, errors.Wrap(err, "failed to decode project JSON")
	}

	categoriesByDef := make(map[int]map[int]string, len(jp.Defs.Layers))
	for _, def := range jp.Defs.Layers {
		categories := make(map[int]string, len(def.IntGridValues))
		for _, v := range def.IntGridValues {
			categories[v.Value] = v.Identifier
		}
		categoriesByDef[def.UID] = categories
	}

	p := &Project{Levels: make([]*Level, 0, len(jp.Levels))}
	for _, jl := range jp.Levels {
		level := &Level{Name: jl.Identifier}
		for _, li := range jl.LayerInstances {
			if li.Type != IntGridType {
				klog.V(2).Infof("level %q: skipping layer %q of type %q", jl.Identifier, li.Identifier, li.Type)
				continue
			}
			if li.CWid < 0 || li.CHei < 0 || li.GridSize <= 0 {
				return nil, errors.Errorf("level %q, layer %q: invalid dimensions %dx%d with cell size %d",
					jl.Identifier, li.Identifier, li.CWid, li.CHei, li.GridSize)
			}
			if len(li.IntGridCsv) != li.CWid*li.CHei {
				return nil, errors.Errorf("level %q, layer %q: %d cell values for a %dx%d grid",
					jl.Identifier, li.Identifier, len(li.IntGridCsv), li.CWid, li.CHei)
			}
			categories, found := categoriesByDef[li.LayerDefUID]
			if !found {
				return nil, errors.Errorf("level %q, layer %q: unknown layer definition uid %d",
					jl.Identifier, li.Identifier, li.LayerDefUID)
			}
			level.Layers = append(level.Layers, &Layer{
				Name:       li.Identifier,
				Width:      li.CWid,
				Height:     li.CHei,
				CellSize:   li.GridSize,
				Values:     li.IntGridCsv,
				categories: categories,
			})
		}
		p.Levels = append(p.Levels, level)
	}
	return p, nil
}

// LevelNames returns the names of the levels, in project order.
func (p *Project) LevelNames() []string {
	return generics.SliceMap(p.Levels, func(l *Level) string { return l.Name })
}

// Level returns the level with the given name.
func (p *Project) Level(name string) (*Level, error) {
	for _, level := range p.Levels {
		if level.Name == name {
			return level, nil
		}
	}
	return nil, errors.Errorf("level %q not found, project has levels %q", name, p.LevelNames())
}

// Layer returns the IntGrid layer with the given name.
func (l *Level) Layer(name string) (*Layer, error) {
	for _, layer := range l.Layers {
		if layer.Name == name {
			return layer, nil
		}
	}
	return nil, errors.Errorf("level %q has no IntGrid layer %q", l.Name, name)
}

// CollisionLayers returns the layers that define at least one of the given categories.
//
// It is a configuration error if a category is defined by no layer of the level.
func (l *Level) CollisionLayers(categories []string) ([]*Layer, error) {
	used := generics.MakeSet[string](len(categories))
	var layers []*Layer
	for _, layer := range l.Layers {
		defined := false
		for _, category := range categories {
			if layer.Defines(category) {
				used.Insert(category)
				defined = true
			}
		}
		if defined {
			layers = append(layers, layer)
		}
	}
	for _, category := range categories {
		if !used.Has(category) {
			return nil, errors.Errorf("level %q: collision category %q is not defined by any IntGrid layer", l.Name, category)
		}
	}
	return layers, nil
}

// Defines returns whether category is one of the layer's IntGrid value names.
func (l *Layer) Defines(category string) bool {
	for _, name := range l.categories {
		if name == category {
			return true
		}
	}
	return false
}

// Categories returns the sorted names of the layer's IntGrid values.
func (l *Layer) Categories() []string {
	names := slices.Collect(maps.Values(l.categories))
	slices.Sort(names)
	return slices.Compact(names)
}

// Category returns the category name of the cell, or "" if it is empty, unnamed, or out of range.
func (l *Layer) Category(x, y int) string {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return ""
	}
	return l.categories[l.Values[y*l.Width+x]]
}

// Occupancy returns a predicate that is true for the cells whose category is one of categories.
// Out of range cells are not solid.
func (l *Layer) Occupancy(categories []string) grid.Occupancy {
	solid := generics.SetWith(categories...)
	return grid.Bounded(l.Width, l.Height, func(x, y int) bool {
		name := l.Category(x, y)
		return name != "" && solid.Has(name)
	})
}
