// Package grid implements the tiled pane grid and, inline, the
// stacked-panes engine: the
// neighbour/alignment algebra, directional resize, focus navigation,
// close-with-fill, stack formation, and split placement for one tab's
// pane arrangement.
package grid

import (
	"fmt"
	"log"
	"sort"

	"github.com/1broseidon/tilegrid/internal/dimension"
	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
	"github.com/1broseidon/tilegrid/internal/resize"
)

// Margins describes the fixed UI strips (status bar, tab bar) that
// separate the Viewport from the full DisplayArea.
type Margins struct {
	Top, Bottom, Left, Right uint
}

// ResizeMinPercent is the default headroom a neighbour pane must retain
// during a directional resize.
const ResizeMinPercent = 5.0

// Grid owns one tab's pane arrangement: a registry of panes plus the
// display geometry they're laid out within.
type Grid struct {
	registry *paneregistry.Registry

	displayX, displayY          int
	displayWidth, displayHeight uint
	margins                     Margins

	nextStackID         uint64
	nextLogicalPosition uint

	fullscreenID *paneregistry.PaneID

	// Verbose enables a log.Printf trace line from ResizeWholeTab;
	// disabled by default so tests stay quiet.
	Verbose bool
}

// New creates a grid over an empty registry sized to width x height
// cells at the origin, with the given viewport margins.
func New(registry *paneregistry.Registry, width, height uint, margins Margins) *Grid {
	return &Grid{
		registry:      registry,
		displayWidth:  width,
		displayHeight: height,
		margins:       margins,
	}
}

func (g *Grid) logf(format string, args ...interface{}) {
	if g.Verbose {
		log.Printf(format, args...)
	}
}

// DisplayArea returns the full tab area as a rect.
func (g *Grid) DisplayArea() geometry.Rect {
	return geometry.Rect{
		X:    g.displayX,
		Y:    g.displayY,
		Cols: dimension.Fixed(g.displayWidth),
		Rows: dimension.Fixed(g.displayHeight),
	}
}

// Viewport returns the area available to tiled panes, excluding the
// status/tab bar margins.
func (g *Grid) Viewport() geometry.Rect {
	w := g.displayWidth
	if g.margins.Left+g.margins.Right < w {
		w -= g.margins.Left + g.margins.Right
	} else {
		w = 0
	}
	h := g.displayHeight
	if g.margins.Top+g.margins.Bottom < h {
		h -= g.margins.Top + g.margins.Bottom
	} else {
		h = 0
	}
	return geometry.Rect{
		X:    g.displayX + int(g.margins.Left),
		Y:    g.displayY + int(g.margins.Top),
		Cols: dimension.Fixed(w),
		Rows: dimension.Fixed(h),
	}
}

// PaneIDs returns every registered pane id in insertion order.
func (g *Grid) PaneIDs() []paneregistry.PaneID {
	return g.registry.PaneIDs()
}

// ActivePaneID returns the currently focused pane id, if any.
func (g *Grid) ActivePaneID() (paneregistry.PaneID, bool) {
	return g.registry.Focused()
}

// GetPaneGeom returns id's current geometry.
func (g *Grid) GetPaneGeom(id paneregistry.PaneID) (geometry.PaneGeom, error) {
	p, ok := g.registry.Get(id)
	if !ok {
		return geometry.PaneGeom{}, &NoPaneByIDError{ID: id}
	}
	return p.Geom(), nil
}

// PlacePane registers p under id with rect as its geometry, bypassing
// the split-from-neighbour path SplitPane uses. This is how a
// declarative layout (internal/layoutconfig) seeds a grid with
// precomputed positions instead of halving panes one at a time.
func (g *Grid) PlacePane(id paneregistry.PaneID, p paneregistry.Pane, rect geometry.Rect) error {
	p.SetGeom(geometry.PaneGeom{Rect: rect})
	g.registry.Insert(id, p)
	return nil
}

// IsInsideViewport reports whether id's rect lies fully inside the
// viewport (as opposed to the full display area, which may include
// margin strips panes never occupy).
func (g *Grid) IsInsideViewport(id paneregistry.PaneID) (bool, error) {
	geom, err := g.GetPaneGeom(id)
	if err != nil {
		return false, err
	}
	vp := g.Viewport()
	r := geom.Rect
	return r.X >= vp.X && r.Right() <= vp.Right() && r.Y >= vp.Y && r.Bottom() <= vp.Bottom(), nil
}

func (g *Grid) setGeom(id paneregistry.PaneID, geom geometry.PaneGeom) error {
	p, ok := g.registry.Get(id)
	if !ok {
		return &NoPaneByIDError{ID: id}
	}
	p.SetGeom(geom)
	return nil
}

// visiblePaneIDs returns every registered pane id not in the hide-set,
// sorted by (Y,X) for deterministic iteration.
func (g *Grid) visiblePaneIDs() []paneregistry.PaneID {
	all := g.registry.PaneIDs()
	out := make([]paneregistry.PaneID, 0, len(all))
	for _, id := range all {
		if g.registry.IsHidden(id) {
			continue
		}
		out = append(out, id)
	}
	geoms := make(map[paneregistry.PaneID]geometry.PaneGeom, len(out))
	for _, id := range out {
		geoms[id], _ = g.GetPaneGeom(id)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := geoms[out[i]].Rect, geoms[out[j]].Rect
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}

// rebuildAxis re-solves the given axis across every maximal span of
// currently visible panes and writes the re-solved sizes, and the offsets
// along axis that follow from them, back to the registry.
func (g *Grid) rebuildAxis(axis resize.Axis, targetCells uint) error {
	ids := g.visiblePaneIDs()
	items := make([]resize.Item, len(ids))
	for i, id := range ids {
		geom, _ := g.GetPaneGeom(id)
		r := geom.Rect
		switch axis {
		case resize.Horizontal:
			items[i] = resize.Item{
				ID:        i,
				X:         r.X,
				Y:         r.Y,
				Dim:       r.Cols,
				Min:       g.registry.MinWidth(id),
				CrossLow:  r.Y,
				CrossHigh: r.Bottom(),
			}
		case resize.Vertical:
			items[i] = resize.Item{
				ID:        i,
				X:         r.X,
				Y:         r.Y,
				Dim:       r.Rows,
				Min:       g.registry.MinHeight(id),
				CrossLow:  r.X,
				CrossHigh: r.Right(),
			}
		}
	}

	results, err := resize.Layout(axis, targetCells, items)
	if err != nil {
		return err
	}

	// ids are in (y,x) order, so in a gap-free tiling the pane whose far
	// edge a pane's near edge touches is placed first; the near edge then
	// follows that far edge to its re-solved position.
	moved := make(map[int]int)
	for i, id := range ids {
		geom, _ := g.GetPaneGeom(id)
		start, dim := &geom.Rect.X, &geom.Rect.Cols
		if axis == resize.Vertical {
			start, dim = &geom.Rect.Y, &geom.Rect.Rows
		}
		oldEnd := *start + int(dim.AsUsize())
		if s, ok := moved[*start]; ok {
			*start = s
		}
		*dim = results[i]
		moved[oldEnd] = *start + int(dim.AsUsize())
		if err := g.setGeom(id, geom); err != nil {
			return err
		}
	}
	return nil
}

// ResizeWholeTab re-solves both axes for a new display size and updates
// viewport offsets accordingly. The
// viewport's margins stay fixed in cell count; only its derived rect
// grows or shrinks with the display area.
func (g *Grid) ResizeWholeTab(width, height uint) error {
	g.logf("resize_whole_tab: %dx%d -> %dx%d", g.displayWidth, g.displayHeight, width, height)
	prevWidth, prevHeight := g.displayWidth, g.displayHeight
	snapshot := g.snapshotGeoms()

	g.displayWidth = width
	g.displayHeight = height

	if err := g.rebuildAxis(resize.Horizontal, width); err != nil {
		g.displayWidth, g.displayHeight = prevWidth, prevHeight
		g.restoreGeoms(snapshot)
		return err
	}
	if err := g.rebuildAxis(resize.Vertical, height); err != nil {
		g.displayWidth, g.displayHeight = prevWidth, prevHeight
		g.restoreGeoms(snapshot)
		return err
	}
	return nil
}

// SetFocused sets the focused pane, provided it is selectable and not
// hidden.
func (g *Grid) SetFocused(id paneregistry.PaneID) error {
	if !g.registry.Selectable(id) {
		return fmt.Errorf("pane %s is not selectable", id)
	}
	if g.registry.IsHidden(id) {
		return fmt.Errorf("pane %s is hidden", id)
	}
	g.registry.SetFocused(id)
	return nil
}

// FocusNextPane focuses the next selectable, visible pane in (y,x)
// position order, wrapping around.
func (g *Grid) FocusNextPane() error {
	return g.focusRelative(1)
}

// FocusPreviousPane focuses the previous selectable, visible pane in
// (y,x) position order, wrapping around.
func (g *Grid) FocusPreviousPane() error {
	return g.focusRelative(-1)
}

func (g *Grid) focusRelative(delta int) error {
	ids := g.visiblePaneIDs()
	var selectable []paneregistry.PaneID
	for _, id := range ids {
		if g.registry.Selectable(id) {
			selectable = append(selectable, id)
		}
	}
	if len(selectable) == 0 {
		return fmt.Errorf("no selectable panes")
	}
	current, ok := g.registry.Focused()
	if !ok {
		return g.SetFocused(selectable[0])
	}
	idx := 0
	for i, id := range selectable {
		if id == current {
			idx = i
			break
		}
	}
	next := (idx + delta + len(selectable)) % len(selectable)
	return g.SetFocused(selectable[next])
}

// ToggleActivePaneFullscreen hides every pane but the focused one, which
// keeps its existing geometry underneath a geom-override expanding it to
// the viewport; toggling again restores every pane's visibility and
// clears the override. This backs per-pane fullscreen toggling,
// supplemented from the original source's fullscreen command.
func (g *Grid) ToggleActivePaneFullscreen() error {
	active, ok := g.registry.Focused()
	if !ok {
		return fmt.Errorf("no focused pane")
	}
	if g.fullscreenID != nil {
		for _, id := range g.registry.PaneIDs() {
			g.registry.Show(id)
			if p, ok := g.registry.Get(id); ok {
				p.SetGeomOverride(geometry.PaneGeom{}, false)
			}
		}
		g.fullscreenID = nil
		return nil
	}

	p, ok := g.registry.Get(active)
	if !ok {
		return &NoPaneByIDError{ID: active}
	}
	for _, id := range g.registry.PaneIDs() {
		if id != active {
			g.registry.Hide(id)
		}
	}
	p.SetGeomOverride(geometry.PaneGeom{Rect: g.Viewport()}, true)
	f := active
	g.fullscreenID = &f
	return nil
}
