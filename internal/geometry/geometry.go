// Package geometry implements the rectangle and pane-geometry algebra the
// grid mutates: containment tests, splitting, and the stack tag every
// pane geometry optionally carries.
package geometry

import "github.com/1broseidon/tilegrid/internal/dimension"

// Direction is a cardinal direction used by split, resize, and focus
// navigation.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// IsHorizontal reports whether d moves along the x axis.
func (d Direction) IsHorizontal() bool {
	return d == Left || d == Right
}

// StackID identifies a vertical stack of panes sharing one column.
type StackID uint64

// Point is a single cell coordinate.
type Point struct {
	X, Y int
}

// Rect is a pane's rectangle in realised cells: x, y are the top-left
// corner; cols, rows are dimensions (percentage or fixed) of the rect's
// container along each axis.
type Rect struct {
	X, Y int
	Cols dimension.Dimension
	Rows dimension.Dimension
}

// Contains reports half-open rectangle containment: p is inside iff
// x <= p.X < x+cols and y <= p.Y < y+rows.
func (r Rect) Contains(p Point) bool {
	w := int(r.Cols.AsUsize())
	h := int(r.Rows.AsUsize())
	return p.X >= r.X && p.X < r.X+w && p.Y >= r.Y && p.Y < r.Y+h
}

// Right returns the exclusive x coordinate one past the rect's right
// edge.
func (r Rect) Right() int {
	return r.X + int(r.Cols.AsUsize())
}

// Bottom returns the exclusive y coordinate one past the rect's bottom
// edge.
func (r Rect) Bottom() int {
	return r.Y + int(r.Rows.AsUsize())
}

// HorizontallyOverlaps reports whether r and other's x-ranges overlap.
func (r Rect) HorizontallyOverlaps(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right()
}

// VerticallyOverlaps reports whether r and other's y-ranges overlap.
func (r Rect) VerticallyOverlaps(other Rect) bool {
	return r.Y < other.Bottom() && other.Y < r.Bottom()
}

// PaneGeom is a pane's placement: a rectangle plus an optional stack tag
// and logical position used to order panes deterministically within a
// span.
type PaneGeom struct {
	Rect            Rect
	Stacked         *StackID
	LogicalPosition *uint
}

// Split divides rect along direction into two geometries of half the
// declared percentage each; their realised cell counts sum back to the
// original (the inter-pane border is rendered on the shared edge, not
// carved out as a separate cell). A Fixed axis along the split direction
// cannot be split: fixed panes are not splittable, so Split returns
// ok=false.
//
// Horizontal split (direction Right/Left) divides cols; vertical split
// (direction Down/Up) divides rows. The caller decides which axis by
// passing the corresponding direction.
func Split(direction Direction, rect Rect) (first, second Rect, ok bool) {
	if direction.IsHorizontal() {
		return splitCols(rect)
	}
	return splitRows(rect)
}

func splitCols(rect Rect) (Rect, Rect, bool) {
	p, isPercent := rect.Cols.AsPercent()
	if !isPercent {
		return Rect{}, Rect{}, false
	}
	total := int(rect.Cols.AsUsize())
	leftWidth := total / 2
	rightWidth := total - leftWidth

	half := p / 2
	first := rect
	first.Cols = dimension.Percent(half).SetInner(uint(leftWidth))

	second := rect
	second.X = rect.X + leftWidth
	second.Cols = dimension.Percent(half).SetInner(uint(rightWidth))

	return first, second, true
}

func splitRows(rect Rect) (Rect, Rect, bool) {
	p, isPercent := rect.Rows.AsPercent()
	if !isPercent {
		return Rect{}, Rect{}, false
	}
	total := int(rect.Rows.AsUsize())
	topHeight := total / 2
	bottomHeight := total - topHeight

	half := p / 2
	first := rect
	first.Rows = dimension.Percent(half).SetInner(uint(topHeight))

	second := rect
	second.Y = rect.Y + topHeight
	second.Rows = dimension.Percent(half).SetInner(uint(bottomHeight))

	return first, second, true
}
