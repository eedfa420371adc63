package grid

import (
	"fmt"
	"sort"

	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

// StackPaneUp collects the panes directly above p whose x-extents
// exactly cover p's, normalises any mismatched
// tops, and combine them with p (expanded) into a new stack.
func (g *Grid) StackPaneUp(p paneregistry.PaneID) error {
	return g.stackVertical(p, geometry.Up)
}

// StackPaneDown is the downward counterpart of StackPaneUp.
func (g *Grid) StackPaneDown(p paneregistry.PaneID) error {
	return g.stackVertical(p, geometry.Down)
}

func (g *Grid) stackVertical(p paneregistry.PaneID, side geometry.Direction) error {
	pg, err := g.GetPaneGeom(p)
	if err != nil {
		return err
	}
	if pg.Stacked != nil {
		return fmt.Errorf("pane %s is already stacked", p)
	}

	candidates, err := g.neighbourSet(p, side)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return ErrNoCoverage
	}

	ivs := make([]interval, len(candidates))
	for i, id := range candidates {
		cg, _ := g.GetPaneGeom(id)
		ivs[i] = interval{cg.Rect.X, cg.Rect.Right()}
	}
	if !coversExactly(ivs, pg.Rect.X, pg.Rect.Right()) {
		return ErrNoCoverage
	}

	for _, id := range candidates {
		if !g.registry.Selectable(id) {
			return fmt.Errorf("pane %s is not selectable and cannot join a stack", id)
		}
	}

	if side == geometry.Up {
		if err := g.fillGeomHolesVertically(candidates, true); err != nil {
			return err
		}
	} else {
		if err := g.fillGeomHolesVertically(candidates, false); err != nil {
			return err
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		gi, _ := g.GetPaneGeom(candidates[i])
		gj, _ := g.GetPaneGeom(candidates[j])
		return gi.Rect.X < gj.Rect.X
	})

	return g.CombineVerticallyAlignedPanesToStack(p, candidates, side == geometry.Up)
}

// fillGeomHolesVertically normalises a set of horizontally-adjacent
// panes to a common edge (their shared top when stacking upward, their
// shared bottom when stacking downward) so they present one flat row to
// join the stack. Each pane's edge nearest the target (already aligned
// with it) is held fixed; only the far edge moves, so its height changes
// but its footprint never grows into neighbouring x-ranges.
func (g *Grid) fillGeomHolesVertically(ids []paneregistry.PaneID, aboveTarget bool) error {
	if len(ids) <= 1 {
		return nil
	}
	var common int
	for i, id := range ids {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			return err
		}
		edge := geom.Rect.Y
		if !aboveTarget {
			edge = geom.Rect.Bottom()
		}
		if i == 0 || (aboveTarget && edge > common) || (!aboveTarget && edge < common) {
			common = edge
		}
	}
	for _, id := range ids {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			return err
		}
		if aboveTarget {
			bottom := geom.Rect.Bottom()
			geom.Rect.Y = common
			geom.Rect.Rows = geom.Rect.Rows.SetInner(uint(bottom - common))
		} else {
			top := geom.Rect.Y
			geom.Rect.Rows = geom.Rect.Rows.SetInner(uint(common - top))
		}
		if err := g.setGeom(id, geom); err != nil {
			return err
		}
	}
	return nil
}

// StackPaneLeft / StackPaneRight fold p with its single aligned
// horizontal neighbour into a new vertical stack occupying their
// combined footprint (see CombineHorizontallyAlignedPanesToStack).
func (g *Grid) StackPaneLeft(p paneregistry.PaneID) error {
	return g.stackHorizontal(p, geometry.Left)
}

func (g *Grid) StackPaneRight(p paneregistry.PaneID) error {
	return g.stackHorizontal(p, geometry.Right)
}

func (g *Grid) stackHorizontal(p paneregistry.PaneID, side geometry.Direction) error {
	pg, err := g.GetPaneGeom(p)
	if err != nil {
		return err
	}
	if pg.Stacked != nil {
		return fmt.Errorf("pane %s is already stacked", p)
	}
	candidates, err := g.neighbourSet(p, side)
	if err != nil {
		return err
	}
	if len(candidates) != 1 {
		return ErrNoCoverage
	}
	if !g.registry.Selectable(candidates[0]) {
		return fmt.Errorf("pane %s is not selectable and cannot join a stack", candidates[0])
	}
	return g.CombineHorizontallyAlignedPanesToStack(p, candidates[0])
}

// UnstackPaneUp removes id from its stack via the stack engine's
// break-out operation, inverting stack_pane_up/down/left/right.
func (g *Grid) UnstackPaneUp(id paneregistry.PaneID) error {
	return g.BreakPaneOutOfStack(id)
}
