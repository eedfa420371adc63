package grid

import (
	"fmt"

	"github.com/1broseidon/tilegrid/internal/dimension"
	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

// chooseSplitDirection decides which axis a new split should divide:
// horizontally (dividing cols, a side-by-side layout)
// when rows·ratio exceeds cols and there is vertical headroom for two
// panes; otherwise split vertically (dividing rows) when there is
// horizontal headroom. Returns ok=false if rect isn't splittable either
// way.
func chooseSplitDirection(rect geometry.Rect, cursorRatio float64, minWidth, minHeight uint) (geometry.Direction, bool) {
	cols := float64(rect.Cols.AsUsize())
	rows := float64(rect.Rows.AsUsize())
	if rows*cursorRatio > cols && rect.Rows.AsUsize() > 2*minHeight {
		return geometry.Right, true
	}
	if rect.Cols.AsUsize() > 2*minWidth {
		return geometry.Down, true
	}
	return geometry.Right, false
}

// FindRoomForNewPane picks the largest splittable visible pane and the
// axis a new split should use.
func (g *Grid) FindRoomForNewPane(cursorRatio float64) (paneregistry.PaneID, geometry.Direction, bool) {
	var best paneregistry.PaneID
	var bestDir geometry.Direction
	var bestArea uint
	found := false

	for _, id := range g.visiblePaneIDs() {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			continue
		}
		if geom.Stacked != nil {
			continue
		}
		minW := g.registry.MinWidth(id)
		minH := g.registry.MinHeight(id)
		dir, ok := chooseSplitDirection(geom.Rect, cursorRatio, minW, minH)
		if !ok {
			continue
		}
		area := geom.Rect.Cols.AsUsize() * geom.Rect.Rows.AsUsize()
		if !found || area > bestArea {
			best, bestDir, bestArea, found = id, dir, area, true
		}
	}
	return best, bestDir, found
}

// SplitPane places newPane alongside active, halving active's rect along
// the direction chosen by cursorRatio. If
// the registry is empty, active is ignored and newPane is inserted to
// fill the whole viewport (S1). The caller owns newPane's content; this
// only assigns geometry and registers it.
func (g *Grid) SplitPane(active, newID paneregistry.PaneID, newPane paneregistry.Pane, cursorRatio float64) error {
	if g.registry.Len() == 0 {
		vp := g.Viewport()
		geom := geometry.PaneGeom{Rect: geometry.Rect{
			X:    vp.X,
			Y:    vp.Y,
			Cols: dimension.Percent(100).SetInner(vp.Cols.AsUsize()),
			Rows: dimension.Percent(100).SetInner(vp.Rows.AsUsize()),
		}}
		newPane.SetGeom(geom)
		g.registry.Insert(newID, newPane)
		return nil
	}

	activeGeom, err := g.GetPaneGeom(active)
	if err != nil {
		return err
	}
	if activeGeom.Stacked != nil {
		return fmt.Errorf("pane %s is stacked and cannot be split directly", active)
	}

	minW := g.registry.MinWidth(active)
	minH := g.registry.MinHeight(active)
	direction, ok := chooseSplitDirection(activeGeom.Rect, cursorRatio, minW, minH)
	if !ok {
		return fmt.Errorf("pane %s has no room for a new pane", active)
	}

	first, second, ok := geometry.Split(direction, activeGeom.Rect)
	if !ok {
		return fmt.Errorf("pane %s is fixed along the split axis", active)
	}

	activeGeom.Rect = first
	if err := g.setGeom(active, activeGeom); err != nil {
		return err
	}

	newPane.SetGeom(geometry.PaneGeom{Rect: second})
	g.registry.Insert(newID, newPane)
	g.registry.SetFocused(newID)
	return nil
}

// MakePaneStacked converts a lone pane into a one-member stack, used as
// the base case before combine_*_aligned_panes_to_stack grows it.
func (g *Grid) MakePaneStacked(id paneregistry.PaneID) error {
	geom, err := g.GetPaneGeom(id)
	if err != nil {
		return err
	}
	if geom.Stacked != nil {
		return nil
	}
	sid := g.nextStack()
	pos := g.nextLogical()
	geom.Stacked = &sid
	geom.LogicalPosition = &pos
	return g.setGeom(id, geom)
}

func (g *Grid) nextStack() geometry.StackID {
	g.nextStackID++
	return geometry.StackID(g.nextStackID)
}

func (g *Grid) nextLogical() uint {
	g.nextLogicalPosition++
	return g.nextLogicalPosition
}
