package grid

import (
	"math"

	"github.com/1broseidon/tilegrid/internal/dimension"
	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
	"github.com/1broseidon/tilegrid/internal/resize"
)

// ResizeDirective selects whether a change_pane_size call grows or
// shrinks the target pane.
type ResizeDirective int

const (
	Increase ResizeDirective = iota
	Decrease
)

// ResizeStrategy names a resize's shape: a directed
// resize names the side to grow/shrink toward; an undirected resize
// (Direction == nil) tries the eight strategies in order.
type ResizeStrategy struct {
	Resize             ResizeDirective
	Direction          *geometry.Direction
	InvertOnBoundaries bool
}

// ChangePaneSize implements §4.E-R. It returns ok=false (no error) when
// the resize is well-formed but cannot proceed because a neighbour lacks
// headroom — matching the spec's "return false" outcome, distinct from
// the hard failures (CantResizeFixedPanes, NoPaneById).
func (g *Grid) ChangePaneSize(id paneregistry.PaneID, strategy ResizeStrategy, by uint) (bool, error) {
	if strategy.Direction != nil {
		return g.directionalResize(id, strategy.Resize, *strategy.Direction, by, strategy.InvertOnBoundaries)
	}
	return g.undirectedResize(id, strategy.Resize, by)
}

var diagonalPairs = [4][2]geometry.Direction{
	{geometry.Up, geometry.Left},
	{geometry.Up, geometry.Right},
	{geometry.Down, geometry.Left},
	{geometry.Down, geometry.Right},
}

var cardinalDirections = [4]geometry.Direction{geometry.Up, geometry.Down, geometry.Left, geometry.Right}

// undirectedResize tries four diagonals (each as two legs that must both
// succeed) and then four lone cardinals, committing the first that
// succeeds.
func (g *Grid) undirectedResize(id paneregistry.PaneID, directive ResizeDirective, by uint) (bool, error) {
	for _, pair := range diagonalPairs {
		snapshot := g.snapshotGeoms()
		okV, errV := g.directionalResize(id, directive, pair[0], by, false)
		if errV != nil {
			g.restoreGeoms(snapshot)
			continue
		}
		okH, errH := g.directionalResize(id, directive, pair[1], by, false)
		if errH != nil || !okV || !okH {
			g.restoreGeoms(snapshot)
			continue
		}
		return true, nil
	}
	for _, dir := range cardinalDirections {
		snapshot := g.snapshotGeoms()
		ok, err := g.directionalResize(id, directive, dir, by, false)
		if err != nil || !ok {
			g.restoreGeoms(snapshot)
			continue
		}
		return true, nil
	}
	return false, nil
}

func (g *Grid) directionalResize(id paneregistry.PaneID, directive ResizeDirective, direction geometry.Direction, by uint, invertOnBoundaries bool) (bool, error) {
	neighbours, err := g.neighbourSet(id, direction)
	if err != nil {
		return false, err
	}

	if len(neighbours) == 0 {
		if invertOnBoundaries {
			return g.directionalResize(id, directive, direction.Opposite(), by, false)
		}
		return false, nil
	}

	if fixed := g.fixedAlongAxis(neighbours, direction); len(fixed) > 0 {
		return false, &CantResizeFixedPanesError{IDs: fixed}
	}

	companions, err := g.alignedCompanions(id, direction, neighbours)
	if err != nil {
		return false, err
	}

	axis := resize.Vertical
	totalCells := g.displayHeight
	if direction.IsHorizontal() {
		axis = resize.Horizontal
		totalCells = g.displayWidth
	}

	minHeadroom := uint(math.Ceil(ResizeMinPercent / 100 * float64(totalCells)))
	for _, nid := range neighbours {
		geom, err := g.GetPaneGeom(nid)
		if err != nil {
			return false, err
		}
		cells := geom.Rect.Cols.AsUsize()
		min := g.registry.MinWidth(nid)
		if !direction.IsHorizontal() {
			cells = geom.Rect.Rows.AsUsize()
			min = g.registry.MinHeight(nid)
		}
		threshold := min + by + minHeadroom
		if cells < threshold {
			return false, nil
		}
	}

	applyDelta := func(ids []paneregistry.PaneID, delta, shift int) error {
		for _, pid := range ids {
			geom, err := g.GetPaneGeom(pid)
			if err != nil {
				return err
			}
			dim, start := &geom.Rect.Cols, &geom.Rect.X
			if !direction.IsHorizontal() {
				dim, start = &geom.Rect.Rows, &geom.Rect.Y
			}
			*start += shift
			current := dim.AsUsize()
			var next uint
			if delta < 0 {
				d := uint(-delta)
				if d >= current {
					next = 0
				} else {
					next = current - d
				}
			} else {
				next = current + uint(delta)
			}
			if _, isPercent := dim.AsPercent(); isPercent && totalCells > 0 {
				newPct := float64(next) / float64(totalCells) * 100
				*dim = dimension.Percent(newPct).SetInner(next)
			} else {
				*dim = dim.SetInner(next)
			}
			if err := g.setGeom(pid, geom); err != nil {
				return err
			}
		}
		return nil
	}

	growBy, shrinkBy := int(by), int(by)
	if directive == Decrease {
		growBy, shrinkBy = -int(by), -int(by)
	}

	// The shared edge moves toward direction by growBy: for Left/Up the
	// target side's near edge moves, for Right/Down the neighbours' does.
	companionShift, neighbourShift := 0, growBy
	if direction == geometry.Left || direction == geometry.Up {
		companionShift, neighbourShift = -growBy, 0
	}
	if err := applyDelta(companions, growBy, companionShift); err != nil {
		return false, err
	}
	if err := applyDelta(neighbours, -shrinkBy, neighbourShift); err != nil {
		return false, err
	}

	if err := g.rebuildAxis(axis, totalCells); err != nil {
		return false, err
	}
	return true, nil
}
