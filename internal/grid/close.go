package grid

import (
	"github.com/1broseidon/tilegrid/internal/dimension"
	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
	"github.com/1broseidon/tilegrid/internal/resize"
)

type closeSide int

const (
	sideLeft closeSide = iota
	sideRight
	sideAbove
	sideBelow
)

// aligningSet finds the panes whose outer edge aligns with p's edge on
// side and whose perpendicular extents exactly cover p's.
func (g *Grid) aligningSet(p paneregistry.PaneID, target geometry.Rect, side closeSide) ([]paneregistry.PaneID, bool) {
	var out []paneregistry.PaneID
	var ivs []interval
	for _, id := range g.visiblePaneIDs() {
		if id == p {
			continue
		}
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			continue
		}
		r := geom.Rect
		switch side {
		case sideLeft:
			if r.Right() == target.X && r.VerticallyOverlaps(target) {
				out = append(out, id)
				ivs = append(ivs, interval{r.Y, r.Bottom()})
			}
		case sideRight:
			if r.X == target.Right() && r.VerticallyOverlaps(target) {
				out = append(out, id)
				ivs = append(ivs, interval{r.Y, r.Bottom()})
			}
		case sideAbove:
			if r.Bottom() == target.Y && r.HorizontallyOverlaps(target) {
				out = append(out, id)
				ivs = append(ivs, interval{r.X, r.Right()})
			}
		case sideBelow:
			if r.Y == target.Bottom() && r.HorizontallyOverlaps(target) {
				out = append(out, id)
				ivs = append(ivs, interval{r.X, r.Right()})
			}
		}
	}

	var lo, hi int
	if side == sideLeft || side == sideRight {
		lo, hi = target.Y, target.Bottom()
	} else {
		lo, hi = target.X, target.Right()
	}
	if !coversExactly(ivs, lo, hi) {
		return nil, false
	}
	return out, true
}

// growIntoFreedSpace expands each member of absorbers to reclaim
// target's rectangle along the axis implied by side, recomputing each
// member's declared percentage from its new realised cell count so a
// later whole-tab resize stays consistent.
func (g *Grid) growIntoFreedSpace(absorbers []paneregistry.PaneID, target geometry.Rect, side closeSide) error {
	for _, id := range absorbers {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			return err
		}
		switch side {
		case sideLeft:
			geom.Rect.Cols = growDim(geom.Rect.Cols, target.Cols.AsUsize(), g.displayWidth)
		case sideRight:
			geom.Rect.X -= int(target.Cols.AsUsize())
			geom.Rect.Cols = growDim(geom.Rect.Cols, target.Cols.AsUsize(), g.displayWidth)
		case sideAbove:
			geom.Rect.Rows = growDim(geom.Rect.Rows, target.Rows.AsUsize(), g.displayHeight)
		case sideBelow:
			geom.Rect.Y -= int(target.Rows.AsUsize())
			geom.Rect.Rows = growDim(geom.Rect.Rows, target.Rows.AsUsize(), g.displayHeight)
		}
		if err := g.setGeom(id, geom); err != nil {
			return err
		}
	}
	return nil
}

func growDim(d dimension.Dimension, by, total uint) dimension.Dimension {
	next := d.AsUsize() + by
	if _, isPercent := d.AsPercent(); isPercent && total > 0 {
		newPct := float64(next) / float64(total) * 100
		return dimension.Percent(newPct).SetInner(next)
	}
	return d.IncreaseInner(by)
}

// ClosePane removes id and lets its freed
// rectangle be absorbed by an aligning set of neighbours (left, right,
// above, below, in that priority order), falling back to a whole-tab
// reflow if none qualifies. If the focused pane closes, focus moves to
// next_active_pane of the absorbing set.
func (g *Grid) ClosePane(id paneregistry.PaneID) error {
	geom, err := g.GetPaneGeom(id)
	if err != nil {
		return err
	}

	wasFocused := false
	if focused, ok := g.registry.Focused(); ok && focused == id {
		wasFocused = true
	}

	if geom.Stacked != nil {
		sid := *geom.Stacked
		members := g.stackMembers(sid)
		if err := g.FillSpaceOverPaneInStack(id); err != nil {
			return err
		}
		g.registry.Remove(id)
		if wasFocused {
			g.focusSuccessor(members)
		}
		return nil
	}

	target := geom.Rect
	sides := []closeSide{sideLeft, sideRight, sideAbove, sideBelow}
	for _, side := range sides {
		absorbers, ok := g.aligningSet(id, target, side)
		if !ok {
			continue
		}
		if err := g.growIntoFreedSpace(absorbers, target, side); err != nil {
			return err
		}
		g.registry.Remove(id)

		axis := resize.Vertical
		totalCells := g.displayHeight
		if side == sideLeft || side == sideRight {
			axis = resize.Horizontal
			totalCells = g.displayWidth
		}
		if err := g.rebuildAxis(axis, totalCells); err != nil {
			return err
		}
		if wasFocused {
			g.focusSuccessor(absorbers)
		}
		return nil
	}

	g.registry.Remove(id)
	remaining := g.registry.PaneIDs()
	if err := g.ResizeWholeTab(g.displayWidth, g.displayHeight); err != nil {
		return err
	}
	if wasFocused {
		g.focusSuccessor(remaining)
	}
	return nil
}

func (g *Grid) focusSuccessor(candidates []paneregistry.PaneID) {
	if successor, ok := g.registry.NextActivePane(candidates); ok {
		g.registry.SetFocused(successor)
		return
	}
	if g.registry.Len() == 0 {
		g.registry.ClearFocused()
	}
}
