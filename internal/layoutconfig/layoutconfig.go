// Package layoutconfig loads declarative layout templates from YAML and
// resolves them to concrete pane rects, swapping to a template's
// declared fallback when the active one's size constraints no longer
// fit the available space.
package layoutconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tilegrid/internal/dimension"
	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/grid"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
	"github.com/1broseidon/tilegrid/internal/resize"
)

// SplitAxis names which dimension a node's children divide.
type SplitAxis string

const (
	AxisCols SplitAxis = "cols"
	AxisRows SplitAxis = "rows"
)

// SizeConstraint is one node's declared length along its parent's split
// axis: a percentage share or a fixed cell count, plus the minimum below
// which the node is considered unable to fit.
type SizeConstraint struct {
	Percent float64 `yaml:"percent,omitempty"`
	Fixed   uint    `yaml:"fixed,omitempty"`
	Min     uint    `yaml:"min,omitempty"`
}

func (c SizeConstraint) dimension(inner uint) dimension.Dimension {
	if c.Fixed > 0 {
		return dimension.Fixed(c.Fixed)
	}
	return dimension.Percent(c.Percent).SetInner(inner)
}

// Node is one position in a layout tree: a leaf (an actual pane slot) if
// Children is empty, otherwise a split dividing Axis among Children.
type Node struct {
	Size     SizeConstraint `yaml:"size"`
	Axis     SplitAxis      `yaml:"axis,omitempty"`
	Children []Node         `yaml:"children,omitempty"`
}

func (n Node) isLeaf() bool { return len(n.Children) == 0 }

// Template is one named declarative layout: a preferred root plus an
// ordered list of fallback roots to swap to when Root no longer fits.
type Template struct {
	Name      string `yaml:"name"`
	Root      Node   `yaml:"root"`
	Fallbacks []Node `yaml:"fallbacks,omitempty"`
}

// Defaults mirrors internal/config's grid-wide defaults: per-pane
// minimum size, a resize step and a stack minimum. Resolve and Apply read
// only the minimum pane size; ResizeStep and MinStackRows are parsed but
// not read by anything in this repository.
type Defaults struct {
	MinPaneWidth  uint `yaml:"min_pane_width"`
	MinPaneHeight uint `yaml:"min_pane_height"`
	ResizeStep    uint `yaml:"resize_step"`
	MinStackRows  uint `yaml:"min_stack_rows"`
}

// File is the top-level YAML document: grid-wide defaults plus a named
// library of templates.
type File struct {
	Defaults  Defaults   `yaml:"defaults"`
	Templates []Template `yaml:"templates"`
}

// Load reads and parses a layout file from path, following
// internal/config's load-raw-then-build-effective pipeline (here
// collapsed to a single step since layout templates carry no
// project/user override layering).
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing layout config %s: %w", path, err)
	}
	return &f, nil
}

// Template looks up a template by name.
func (f *File) Template(name string) (Template, bool) {
	for _, t := range f.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

func (d Defaults) minFor(s SizeConstraint) (minWidth, minHeight uint) {
	minWidth, minHeight = d.MinPaneWidth, d.MinPaneHeight
	if minWidth == 0 {
		minWidth = paneregistry.DefaultMinWidth
	}
	if minHeight == 0 {
		minHeight = paneregistry.DefaultMinHeight
	}
	return minWidth, minHeight
}

// Resolve picks the first of template's root or fallbacks (in order)
// whose leaves all realise at least their declared minimum within
// available, and returns that root's leaf rects in tree order: when the
// preferred arrangement no longer fits, the next declared fallback is
// tried instead of failing outright.
func Resolve(template Template, available geometry.Rect, defaults Defaults) ([]geometry.Rect, Node, error) {
	candidates := append([]Node{template.Root}, template.Fallbacks...)
	var lastErr error
	for _, root := range candidates {
		rects, err := layoutLeaves(root, available, defaults)
		if err != nil {
			lastErr = err
			continue
		}
		return rects, root, nil
	}
	return nil, Node{}, fmt.Errorf("layout %q: no root or fallback fits a %dx%d area: %w",
		template.Name, available.Cols.AsUsize(), available.Rows.AsUsize(), lastErr)
}

// layoutLeaves recursively distributes rect among node's children using
// internal/resize's proportional solver (the same solver the grid itself
// uses to re-normalise Percent dimensions), failing if any split cannot
// give every child at least its declared minimum.
func layoutLeaves(node Node, rect geometry.Rect, defaults Defaults) ([]geometry.Rect, error) {
	if node.isLeaf() {
		minW, minH := defaults.minFor(node.Size)
		if rect.Cols.AsUsize() < minW || rect.Rows.AsUsize() < minH {
			return nil, fmt.Errorf("leaf requires at least %dx%d, only %dx%d available",
				minW, minH, rect.Cols.AsUsize(), rect.Rows.AsUsize())
		}
		return []geometry.Rect{rect}, nil
	}

	axis := resize.Horizontal
	targetCells := rect.Cols.AsUsize()
	if node.Axis == AxisRows {
		axis = resize.Vertical
		targetCells = rect.Rows.AsUsize()
	}

	items := make([]resize.Item, len(node.Children))
	for i, c := range node.Children {
		minW, minH := defaults.minFor(c.Size)
		min := minW
		if axis == resize.Vertical {
			min = minH
		}
		if c.Size.Min > min {
			min = c.Size.Min
		}
		items[i] = resize.Item{
			ID:        i,
			Dim:       c.Size.dimension(targetCells / uint(len(node.Children))),
			Min:       min,
			CrossLow:  0,
			CrossHigh: 1,
		}
	}
	dims, err := resize.Layout(axis, targetCells, items)
	if err != nil {
		return nil, fmt.Errorf("splitting along %s: %w", node.Axis, err)
	}

	var out []geometry.Rect
	var cursor uint
	for i, c := range node.Children {
		childRect := rect
		size := dims[i].AsUsize()
		if axis == resize.Horizontal {
			childRect.X = rect.X + int(cursor)
			childRect.Cols = dims[i]
		} else {
			childRect.Y = rect.Y + int(cursor)
			childRect.Rows = dims[i]
		}
		leaves, err := layoutLeaves(c, childRect, defaults)
		if err != nil {
			return nil, err
		}
		out = append(out, leaves...)
		cursor += size
	}
	return out, nil
}

// LeafPane pairs the id and content a caller wants placed into one leaf
// of a resolved template, in leaf order.
type LeafPane struct {
	ID   paneregistry.PaneID
	Pane paneregistry.Pane
}

// Apply resolves template against g's viewport and places each of panes
// into the resulting leaf rects via Grid.PlacePane, in leaf order. It
// returns the root (original or swapped-to fallback) that was used.
func Apply(g *grid.Grid, template Template, defaults Defaults, panes []LeafPane) (Node, error) {
	rects, root, err := Resolve(template, g.Viewport(), defaults)
	if err != nil {
		return Node{}, err
	}
	if len(rects) != len(panes) {
		return Node{}, fmt.Errorf("layout %q has %d leaves, got %d panes", template.Name, len(rects), len(panes))
	}
	for i, lp := range panes {
		if err := g.PlacePane(lp.ID, lp.Pane, rects[i]); err != nil {
			return Node{}, err
		}
	}
	return root, nil
}
