package grid

import (
	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

// neighbourSet returns every visible pane whose outer edge touches
// target's edge on side direction and whose cross-axis projection
// overlaps target's.
func (g *Grid) neighbourSet(targetID paneregistry.PaneID, direction geometry.Direction) ([]paneregistry.PaneID, error) {
	targetGeom, err := g.GetPaneGeom(targetID)
	if err != nil {
		return nil, err
	}
	target := targetGeom.Rect

	var out []paneregistry.PaneID
	for _, id := range g.visiblePaneIDs() {
		if id == targetID {
			continue
		}
		geom, _ := g.GetPaneGeom(id)
		r := geom.Rect
		switch direction {
		case geometry.Right:
			if r.X == target.Right() && r.VerticallyOverlaps(target) {
				out = append(out, id)
			}
		case geometry.Left:
			if r.Right() == target.X && r.VerticallyOverlaps(target) {
				out = append(out, id)
			}
		case geometry.Down:
			if r.Y == target.Bottom() && r.HorizontallyOverlaps(target) {
				out = append(out, id)
			}
		case geometry.Up:
			if r.Bottom() == target.Y && r.HorizontallyOverlaps(target) {
				out = append(out, id)
			}
		}
	}
	return out, nil
}

// alignedCompanions returns the panes sharing target's alignment along
// the resize axis's perpendicular extent (same column for a Left/Right
// resize, same row for an Up/Down resize), bounded to the span covered
// by neighbours. Target itself is included.
func (g *Grid) alignedCompanions(targetID paneregistry.PaneID, direction geometry.Direction, neighbours []paneregistry.PaneID) ([]paneregistry.PaneID, error) {
	targetGeom, err := g.GetPaneGeom(targetID)
	if err != nil {
		return nil, err
	}
	target := targetGeom.Rect

	boundLow, boundHigh := boundsFromNeighbours(g, direction, neighbours)

	out := []paneregistry.PaneID{targetID}
	for _, id := range g.visiblePaneIDs() {
		if id == targetID {
			continue
		}
		geom, _ := g.GetPaneGeom(id)
		r := geom.Rect
		if direction.IsHorizontal() {
			if r.X != target.X || r.Cols.AsUsize() != target.Cols.AsUsize() {
				continue
			}
			if len(neighbours) > 0 && (r.Y < boundLow || r.Bottom() > boundHigh) {
				continue
			}
		} else {
			if r.Y != target.Y || r.Rows.AsUsize() != target.Rows.AsUsize() {
				continue
			}
			if len(neighbours) > 0 && (r.X < boundLow || r.Right() > boundHigh) {
				continue
			}
		}
		out = append(out, id)
	}
	return out, nil
}

func boundsFromNeighbours(g *Grid, direction geometry.Direction, neighbours []paneregistry.PaneID) (low, high int) {
	first := true
	for _, id := range neighbours {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			continue
		}
		r := geom.Rect
		var lo, hi int
		if direction.IsHorizontal() {
			lo, hi = r.Y, r.Bottom()
		} else {
			lo, hi = r.X, r.Right()
		}
		if first {
			low, high = lo, hi
			first = false
			continue
		}
		if lo < low {
			low = lo
		}
		if hi > high {
			high = hi
		}
	}
	return low, high
}

// fixedAlongAxis reports which of ids have a Fixed dimension along the
// resize axis (Cols for a horizontal direction, Rows otherwise).
func (g *Grid) fixedAlongAxis(ids []paneregistry.PaneID, direction geometry.Direction) []paneregistry.PaneID {
	var out []paneregistry.PaneID
	for _, id := range ids {
		geom, err := g.GetPaneGeom(id)
		if err != nil {
			continue
		}
		dim := geom.Rect.Rows
		if direction.IsHorizontal() {
			dim = geom.Rect.Cols
		}
		if dim.IsFixed() {
			out = append(out, id)
		}
	}
	return out
}

// snapshotGeoms captures every registered pane's geometry, for the
// undirected resize trial-and-rollback search.
func (g *Grid) snapshotGeoms() map[paneregistry.PaneID]geometry.PaneGeom {
	out := make(map[paneregistry.PaneID]geometry.PaneGeom)
	for _, id := range g.registry.PaneIDs() {
		out[id], _ = g.GetPaneGeom(id)
	}
	return out
}

func (g *Grid) restoreGeoms(snapshot map[paneregistry.PaneID]geometry.PaneGeom) {
	for id, geom := range snapshot {
		_ = g.setGeom(id, geom)
	}
}
