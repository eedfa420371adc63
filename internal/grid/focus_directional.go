package grid

import (
	"fmt"

	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

// MoveFocusLeft, MoveFocusRight, MoveFocusUp, and MoveFocusDown move focus
// among selectable, non-hidden panes
// directly on dir of the focused pane and overlapping it on the
// perpendicular axis, focus the one with the greatest last-activation
// timestamp. If the winning candidate is a stack member, focus descends
// into the stack's currently-expanded member. If no candidate exists,
// focus wraps to the pane on the opposite edge.
func (g *Grid) MoveFocusLeft() error  { return g.moveFocus(geometry.Left) }
func (g *Grid) MoveFocusRight() error { return g.moveFocus(geometry.Right) }
func (g *Grid) MoveFocusUp() error    { return g.moveFocus(geometry.Up) }
func (g *Grid) MoveFocusDown() error  { return g.moveFocus(geometry.Down) }

func (g *Grid) moveFocus(direction geometry.Direction) error {
	current, ok := g.registry.Focused()
	if !ok {
		return fmt.Errorf("no focused pane")
	}

	candidates, err := g.neighbourSet(current, direction)
	if err != nil {
		return err
	}
	candidates = g.descendIntoExpandedStackMembers(candidates)

	if target, ok := g.registry.NextActivePane(candidates); ok {
		return g.SetFocused(target)
	}

	target, ok, err := g.paneIDOnEdge(current, direction.Opposite())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no selectable pane to focus")
	}
	return g.SetFocused(target)
}

// descendIntoExpandedStackMembers replaces any candidate that belongs to
// a stack with that stack's currently-expanded member, deduplicating the
// result.
func (g *Grid) descendIntoExpandedStackMembers(candidates []paneregistry.PaneID) []paneregistry.PaneID {
	seen := make(map[paneregistry.PaneID]bool, len(candidates))
	out := make([]paneregistry.PaneID, 0, len(candidates))
	for _, id := range candidates {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			continue
		}
		target := id
		if geom.Stacked != nil {
			members := g.stackMembers(*geom.Stacked)
			if expanded, ok := g.expandedMember(members); ok {
				target = expanded
			}
		}
		if !seen[target] {
			seen[target] = true
			out = append(out, target)
		}
	}
	return out
}

// paneIDOnEdge finds the selectable, non-hidden pane on edgeSide of the
// grid (the side dir's original direction wraps back to), preferring a
// pane that overlaps current on the perpendicular axis. Ties are broken
// the same way as NextActivePane: by
// greatest last-activation timestamp, then ascending id.
func (g *Grid) paneIDOnEdge(current paneregistry.PaneID, edgeSide geometry.Direction) (paneregistry.PaneID, bool, error) {
	currentGeom, err := g.GetPaneGeom(current)
	if err != nil {
		return paneregistry.PaneID{}, false, err
	}
	target := currentGeom.Rect

	var extreme int
	haveExtreme := false
	for _, id := range g.visiblePaneIDs() {
		if id == current || !g.registry.Selectable(id) {
			continue
		}
		geom, _ := g.GetPaneGeom(id)
		v := edgeValue(geom.Rect, edgeSide)
		if !haveExtreme || moreExtreme(v, extreme, edgeSide) {
			extreme = v
			haveExtreme = true
		}
	}
	if !haveExtreme {
		return paneregistry.PaneID{}, false, nil
	}

	var onEdge, overlapping []paneregistry.PaneID
	for _, id := range g.visiblePaneIDs() {
		if id == current || !g.registry.Selectable(id) {
			continue
		}
		geom, _ := g.GetPaneGeom(id)
		if edgeValue(geom.Rect, edgeSide) != extreme {
			continue
		}
		onEdge = append(onEdge, id)
		r := geom.Rect
		if edgeSide.IsHorizontal() {
			if r.VerticallyOverlaps(target) {
				overlapping = append(overlapping, id)
			}
		} else {
			if r.HorizontallyOverlaps(target) {
				overlapping = append(overlapping, id)
			}
		}
	}

	pool := overlapping
	if len(pool) == 0 {
		pool = onEdge
	}
	pool = g.descendIntoExpandedStackMembers(pool)
	winner, ok := g.registry.NextActivePane(pool)
	return winner, ok, nil
}

// edgeValue returns the coordinate of r's edge on side: its X for Left
// (the edge wrap lands on when searching leftward), its Right() for
// Right, its Y for Up, its Bottom() for Down.
func edgeValue(r geometry.Rect, side geometry.Direction) int {
	switch side {
	case geometry.Left:
		return r.X
	case geometry.Right:
		return r.Right()
	case geometry.Up:
		return r.Y
	default:
		return r.Bottom()
	}
}

// moreExtreme reports whether candidate is further toward side than
// current: smaller for Left/Up (we want the leftmost/topmost edge),
// larger for Right/Down (the rightmost/bottommost edge).
func moreExtreme(candidate, current int, side geometry.Direction) bool {
	switch side {
	case geometry.Left, geometry.Up:
		return candidate < current
	default:
		return candidate > current
	}
}
