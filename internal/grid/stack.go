package grid

import (
	"fmt"
	"sort"

	"github.com/1broseidon/tilegrid/internal/dimension"
	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

// stackMembers returns every pane tagged with sid, ordered by logical
// position.
func (g *Grid) stackMembers(sid geometry.StackID) []paneregistry.PaneID {
	var out []paneregistry.PaneID
	for _, id := range g.registry.PaneIDs() {
		geom, err := g.GetPaneGeom(id)
		if err != nil || geom.Stacked == nil || *geom.Stacked != sid {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		gi, _ := g.GetPaneGeom(out[i])
		gj, _ := g.GetPaneGeom(out[j])
		li, lj := uint(0), uint(0)
		if gi.LogicalPosition != nil {
			li = *gi.LogicalPosition
		}
		if gj.LogicalPosition != nil {
			lj = *gj.LogicalPosition
		}
		return li < lj
	})
	return out
}

// expandedMember returns the stack member currently showing full
// content: the one whose realised rows exceeds 1.
func (g *Grid) expandedMember(members []paneregistry.PaneID) (paneregistry.PaneID, bool) {
	for _, id := range members {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			continue
		}
		if geom.Rect.Rows.AsUsize() > 1 {
			return id, true
		}
	}
	return paneregistry.PaneID{}, false
}

// PositionAndSizeOfStack returns the bounding rectangle of the stack
// containing id.
func (g *Grid) PositionAndSizeOfStack(id paneregistry.PaneID) (geometry.Rect, error) {
	geom, err := g.GetPaneGeom(id)
	if err != nil {
		return geometry.Rect{}, err
	}
	if geom.Stacked == nil {
		return geom.Rect, nil
	}
	members := g.stackMembers(*geom.Stacked)
	bounding := geom.Rect
	var top, bottom int
	var totalRows uint
	for i, mid := range members {
		mg, _ := g.GetPaneGeom(mid)
		if i == 0 {
			top = mg.Rect.Y
		}
		bottom = mg.Rect.Bottom()
		totalRows += mg.Rect.Rows.AsUsize()
	}
	bounding.Y = top
	bounding.Rows = dimension.Fixed(uint(bottom - top))
	_ = totalRows
	return bounding, nil
}

// MinStackHeight returns the minimum viable height of id's stack:
// one row per collapsed member plus the ordinary minimum for the
// expanded member.
func (g *Grid) MinStackHeight(id paneregistry.PaneID) (uint, error) {
	geom, err := g.GetPaneGeom(id)
	if err != nil {
		return 0, err
	}
	if geom.Stacked == nil {
		return g.registry.MinHeight(id), nil
	}
	members := g.stackMembers(*geom.Stacked)
	collapsed := uint(0)
	minExpanded := uint(paneregistry.DefaultMinHeight)
	for _, mid := range members {
		mg, _ := g.GetPaneGeom(mid)
		if mg.Rect.Rows.AsUsize() <= 1 {
			collapsed++
		}
		if h := g.registry.MinHeight(mid); h > minExpanded {
			minExpanded = h
		}
	}
	return collapsed + minExpanded, nil
}

// repositionStack lays out members sequentially from the stack's top Y,
// each occupying its declared Fixed rows, preserving x/cols.
func (g *Grid) repositionStack(members []paneregistry.PaneID) error {
	if len(members) == 0 {
		return nil
	}
	first, err := g.GetPaneGeom(members[0])
	if err != nil {
		return err
	}
	y := first.Rect.Y
	for _, id := range members {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			return err
		}
		geom.Rect.Y = y
		y += int(geom.Rect.Rows.AsUsize())
		if err := g.setGeom(id, geom); err != nil {
			return err
		}
	}
	return nil
}

// IncreaseStackHeight / ReduceStackHeight change only the expanded
// member's height, failing if the result would violate MinStackHeight.
func (g *Grid) IncreaseStackHeight(id paneregistry.PaneID, by uint) error {
	return g.resizeExpandedMember(id, int(by))
}

func (g *Grid) ReduceStackHeight(id paneregistry.PaneID, by uint) error {
	return g.resizeExpandedMember(id, -int(by))
}

func (g *Grid) resizeExpandedMember(id paneregistry.PaneID, delta int) error {
	geom, err := g.GetPaneGeom(id)
	if err != nil {
		return err
	}
	if geom.Stacked == nil {
		return nil
	}
	members := g.stackMembers(*geom.Stacked)
	expanded, ok := g.expandedMember(members)
	if !ok {
		return nil
	}
	eg, err := g.GetPaneGeom(expanded)
	if err != nil {
		return err
	}
	current := eg.Rect.Rows.AsUsize()
	var next uint
	if delta < 0 && uint(-delta) >= current {
		next = 0
	} else if delta < 0 {
		next = current - uint(-delta)
	} else {
		next = current + uint(delta)
	}
	minHeight, err := g.MinStackHeight(id)
	if err != nil {
		return err
	}
	bounding, err := g.PositionAndSizeOfStack(id)
	if err != nil {
		return err
	}
	collapsedTotal := bounding.Rows.AsUsize() - current
	if collapsedTotal+next < minHeight {
		return fmt.Errorf("reducing stack below min_stack_height %d", minHeight)
	}
	eg.Rect.Rows = dimension.Fixed(next)
	if err := g.setGeom(expanded, eg); err != nil {
		return err
	}
	return g.repositionStack(members)
}

// MakeRoomForNewPane shrinks the expanded member by one row to free a
// collapsed slot at the bottom of the stack, returning that slot's geom.
func (g *Grid) MakeRoomForNewPane(id paneregistry.PaneID) (geometry.PaneGeom, error) {
	geom, err := g.GetPaneGeom(id)
	if err != nil {
		return geometry.PaneGeom{}, err
	}
	if geom.Stacked == nil {
		return geometry.PaneGeom{}, ErrNoCoverage
	}
	members := g.stackMembers(*geom.Stacked)
	expanded, ok := g.expandedMember(members)
	if !ok {
		return geometry.PaneGeom{}, ErrNoCoverage
	}
	if err := g.ReduceStackHeight(id, 1); err != nil {
		return geometry.PaneGeom{}, err
	}
	eg, _ := g.GetPaneGeom(expanded)
	bounding, err := g.PositionAndSizeOfStack(id)
	if err != nil {
		return geometry.PaneGeom{}, err
	}
	slot := geometry.PaneGeom{
		Rect:    eg.Rect,
		Stacked: geom.Stacked,
	}
	slot.Rect.Y = bounding.Bottom()
	slot.Rect.Rows = dimension.Fixed(1)
	return slot, nil
}

// FillSpaceOverPaneInStack reassigns a closing member's row: to the
// previously-expanded member if it was collapsed, or to the next member
// in logical order (which becomes newly expanded) if it was itself the
// expanded member. Called before the caller removes closingID from the
// registry.
func (g *Grid) FillSpaceOverPaneInStack(closingID paneregistry.PaneID) error {
	geom, err := g.GetPaneGeom(closingID)
	if err != nil {
		return err
	}
	if geom.Stacked == nil {
		return nil
	}
	sid := *geom.Stacked
	members := g.stackMembers(sid)
	freedRows := geom.Rect.Rows.AsUsize()

	remaining := make([]paneregistry.PaneID, 0, len(members)-1)
	closingIdx := -1
	for i, m := range members {
		if m == closingID {
			closingIdx = i
			continue
		}
		remaining = append(remaining, m)
	}

	if len(remaining) == 0 {
		return nil
	}

	wasExpanded := freedRows > 1
	if !wasExpanded {
		if expanded, ok := g.expandedMember(remaining); ok {
			eg, _ := g.GetPaneGeom(expanded)
			eg.Rect.Rows = eg.Rect.Rows.IncreaseInner(freedRows)
			if err := g.setGeom(expanded, eg); err != nil {
				return err
			}
		}
	} else {
		next := closingIdx
		if next >= len(remaining) {
			next = len(remaining) - 1
		}
		successor := remaining[next]
		sg, _ := g.GetPaneGeom(successor)
		sg.Rect.Rows = sg.Rect.Rows.IncreaseInner(freedRows)
		if err := g.setGeom(successor, sg); err != nil {
			return err
		}
	}

	if len(remaining) == 1 {
		return g.BreakPaneOutOfStack(remaining[0])
	}
	return g.repositionStack(remaining)
}

// MoveUp / MoveDown swap expansion state between two members of the same
// stack.
func (g *Grid) MoveUp(src, dst paneregistry.PaneID) error {
	return g.swapExpansion(src, dst)
}

func (g *Grid) MoveDown(src, dst paneregistry.PaneID) error {
	return g.swapExpansion(src, dst)
}

func (g *Grid) swapExpansion(a, b paneregistry.PaneID) error {
	ga, err := g.GetPaneGeom(a)
	if err != nil {
		return err
	}
	gb, err := g.GetPaneGeom(b)
	if err != nil {
		return err
	}
	if ga.Stacked == nil || gb.Stacked == nil || *ga.Stacked != *gb.Stacked {
		return ErrNoCoverage
	}
	ga.Rect.Rows, gb.Rect.Rows = gb.Rect.Rows, ga.Rect.Rows
	if err := g.setGeom(a, ga); err != nil {
		return err
	}
	if err := g.setGeom(b, gb); err != nil {
		return err
	}
	return g.repositionStack(g.stackMembers(*ga.Stacked))
}

// BreakPaneOutOfStack removes id from its stack and relayouts it as an
// ordinary pane; if only one member remains, the stack dissolves and
// that member absorbs the full bounding rect.
func (g *Grid) BreakPaneOutOfStack(id paneregistry.PaneID) error {
	geom, err := g.GetPaneGeom(id)
	if err != nil {
		return err
	}
	if geom.Stacked == nil {
		return nil
	}
	sid := *geom.Stacked
	members := g.stackMembers(sid)

	geom.Stacked = nil
	geom.LogicalPosition = nil
	if err := g.setGeom(id, geom); err != nil {
		return err
	}

	var remaining []paneregistry.PaneID
	for _, m := range members {
		if m != id {
			remaining = append(remaining, m)
		}
	}
	if len(remaining) == 1 {
		only := remaining[0]
		og, err := g.GetPaneGeom(only)
		if err != nil {
			return err
		}
		bounding, err := g.PositionAndSizeOfStack(only)
		if err != nil {
			return err
		}
		og.Stacked = nil
		og.LogicalPosition = nil
		og.Rect.Y = bounding.Y
		og.Rect.Rows = dimension.Percent(100).SetInner(bounding.Rows.AsUsize())
		return g.setGeom(only, og)
	}
	return g.repositionStack(remaining)
}

// combineToStack assigns a fresh stack id and logical positions to
// ordered (top-to-bottom), collapsing every member but expandedID to
// Fixed(1) and giving expandedID the remainder. Every member is
// normalised to x/cols regardless of its original horizontal placement,
// since I3 requires every stack member to share the same x and cols.
// Shared by StackPaneUp/Down and the horizontal variants after they've
// reduced their neighbour set to a single aligned column.
func (g *Grid) combineToStack(ordered []paneregistry.PaneID, expandedID paneregistry.PaneID, x int, cols dimension.Dimension) error {
	if len(ordered) == 0 {
		return nil
	}
	sid := g.nextStack()
	var top int
	var totalRows uint
	for i, id := range ordered {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			return err
		}
		if i == 0 || geom.Rect.Y < top {
			top = geom.Rect.Y
		}
		totalRows += geom.Rect.Rows.AsUsize()
	}

	y := top
	for i, id := range ordered {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			return err
		}
		pos := uint(i)
		s := sid
		geom.Stacked = &s
		geom.LogicalPosition = &pos
		geom.Rect.X = x
		geom.Rect.Cols = cols
		geom.Rect.Y = y
		if id == expandedID {
			geom.Rect.Rows = dimension.Fixed(totalRows - uint(len(ordered)-1))
		} else {
			geom.Rect.Rows = dimension.Fixed(1)
		}
		if err := g.setGeom(id, geom); err != nil {
			return err
		}
		y += int(geom.Rect.Rows.AsUsize())
	}
	return nil
}

// CombineVerticallyAlignedPanesToStack assigns p and neighbours (already
// known to exactly cover p's x-extent, ordered top-to-bottom) into one
// new stack with p expanded.
func (g *Grid) CombineVerticallyAlignedPanesToStack(p paneregistry.PaneID, neighbours []paneregistry.PaneID, pIsLast bool) error {
	pg, err := g.GetPaneGeom(p)
	if err != nil {
		return err
	}
	ordered := make([]paneregistry.PaneID, 0, len(neighbours)+1)
	if pIsLast {
		ordered = append(ordered, neighbours...)
		ordered = append(ordered, p)
	} else {
		ordered = append(ordered, p)
		ordered = append(ordered, neighbours...)
	}
	return g.combineToStack(ordered, p, pg.Rect.X, pg.Rect.Cols)
}

// CombineHorizontallyAlignedPanesToStack handles stack_pane_{left,right}:
// the glossary defines a stack strictly as a vertical group sharing one
// column, so a horizontal pair is first folded into a single column
// occupying their combined footprint (x = min, cols = union), with p
// expanded on top and the neighbour collapsed to one row below it.
func (g *Grid) CombineHorizontallyAlignedPanesToStack(p paneregistry.PaneID, neighbour paneregistry.PaneID) error {
	pg, err := g.GetPaneGeom(p)
	if err != nil {
		return err
	}
	ng, err := g.GetPaneGeom(neighbour)
	if err != nil {
		return err
	}
	if !pg.Rect.VerticallyOverlaps(ng.Rect) || pg.Rect.Y != ng.Rect.Y || pg.Rect.Rows.AsUsize() != ng.Rect.Rows.AsUsize() {
		return ErrNoCoverage
	}

	x := pg.Rect.X
	if ng.Rect.X < x {
		x = ng.Rect.X
	}
	right := pg.Rect.Right()
	if ng.Rect.Right() > right {
		right = ng.Rect.Right()
	}
	cols := dimension.Fixed(uint(right - x))

	totalRows := pg.Rect.Rows.AsUsize()
	sid := g.nextStack()

	pg.Rect.X, pg.Rect.Cols = x, cols
	pg.Rect.Rows = dimension.Fixed(totalRows - 1)
	pos0 := uint(0)
	pg.Stacked, pg.LogicalPosition = &sid, &pos0

	ng.Rect.X, ng.Rect.Cols = x, cols
	ng.Rect.Y = pg.Rect.Y + int(pg.Rect.Rows.AsUsize())
	ng.Rect.Rows = dimension.Fixed(1)
	pos1 := uint(1)
	ng.Stacked, ng.LogicalPosition = &sid, &pos1

	baseY := pg.Rect.Y
	_ = baseY
	if err := g.setGeom(p, pg); err != nil {
		return err
	}
	return g.setGeom(neighbour, ng)
}
