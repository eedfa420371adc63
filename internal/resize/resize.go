// Package resize implements the pane resizer: given a
// target cell count along one axis, it re-solves every Percent
// dimension so each maximal span of panes sums to that target while
// respecting every pane's minimum.
package resize

import (
	"errors"
	"fmt"
	"sort"

	"github.com/1broseidon/tilegrid/internal/dimension"
)

// Axis selects which dimension the resizer solves for.
type Axis int

const (
	// Horizontal solves Cols; spans are grouped by vertical (Y) overlap.
	Horizontal Axis = iota
	// Vertical solves Rows; spans are grouped by horizontal (X) overlap.
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Item is one pane's contribution to a resize solve: its axis dimension,
// its minimum along that axis, its canvas position (for tie-breaking),
// and its cross-axis extent (for span partitioning).
type Item struct {
	ID                  int
	X, Y                int
	Dim                 dimension.Dimension
	Min                 uint
	CrossLow, CrossHigh int
}

// ErrInfeasibleLayout is the sentinel wrapped by InfeasibleLayoutError,
// usable with errors.Is.
var ErrInfeasibleLayout = errors.New("infeasible layout")

// InfeasibleLayoutError is returned when no assignment of cell counts to
// Percent dimensions can satisfy both the display-area constraint and
// every pane's minimum.
type InfeasibleLayoutError struct {
	Axis   Axis
	Detail string
}

func (e *InfeasibleLayoutError) Error() string {
	return fmt.Sprintf("infeasible layout on %s axis: %s", e.Axis, e.Detail)
}

func (e *InfeasibleLayoutError) Unwrap() error { return ErrInfeasibleLayout }

// Layout re-solves the Percent dimensions of items along axis so that,
// for every maximal span (a group of items whose cross-axis projections
// overlap), the sum of realised cell counts equals targetCells, and
// every Percent dimension realises at least its item's minimum. Fixed
// dimensions are realised directly at their declared count and are never
// adjusted. Results are returned in the same order as items.
func Layout(axis Axis, targetCells uint, items []Item) ([]dimension.Dimension, error) {
	out := make([]dimension.Dimension, len(items))
	for i, it := range items {
		out[i] = it.Dim
	}

	for _, span := range partitionSpans(items) {
		if err := solveSpan(axis, targetCells, items, span, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// partitionSpans groups item indices into maximal sets connected by
// [CrossLow,CrossHigh) overlap (two items share a set when a chain of
// overlapping items links them, even if their own ranges are disjoint),
// using union-find over a
// straightforward O(n^2) pairwise overlap test (n is a pane count, never
// more than a few dozen for one tab).
func partitionSpans(items []Item) [][]int {
	n := len(items)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if crossOverlaps(items[i], items[j]) {
				union(i, j)
			}
		}
	}

	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := find(i)
		groups[root] = append(groups[root], i)
	}

	spans := make([][]int, 0, len(groups))
	for _, g := range groups {
		spans = append(spans, g)
	}
	// Deterministic span ordering keeps the solve order stable across
	// calls with the same input.
	sort.Slice(spans, func(i, j int) bool {
		return items[spans[i][0]].CrossLow < items[spans[j][0]].CrossLow
	})
	return spans
}

func crossOverlaps(a, b Item) bool {
	return a.CrossLow < b.CrossHigh && b.CrossLow < a.CrossHigh
}

type spanMember struct {
	idx     int // index into the caller's items/out slices
	percent float64
	isFixed bool
	min     uint
	clamped bool
	share   uint
}

// solveSpan implements §4.D's algorithm steps 2-4 for a single span:
// realise Fixed dims directly, distribute the remainder across Percent
// dims proportionally, then clamp-and-redistribute until stable.
func solveSpan(axis Axis, targetCells uint, items []Item, span []int, out []dimension.Dimension) error {
	members := make([]spanMember, len(span))
	var fixedTotal uint
	for i, idx := range span {
		it := items[idx]
		if it.Dim.IsFixed() {
			v := it.Dim.AsUsize()
			members[i] = spanMember{idx: idx, isFixed: true, min: v, share: v, clamped: true}
			fixedTotal += v
			continue
		}
		p, _ := it.Dim.AsPercent()
		members[i] = spanMember{idx: idx, percent: p, min: it.Min}
	}

	if fixedTotal > targetCells {
		return &InfeasibleLayoutError{Axis: axis, Detail: "fixed panes alone exceed the target size"}
	}

	var minTotal uint
	for _, m := range members {
		minTotal += m.min
	}
	if minTotal > targetCells {
		return &InfeasibleLayoutError{Axis: axis, Detail: "sum of minima exceeds the target size"}
	}

	for {
		active := activeIndices(members)
		if len(active) == 0 {
			break
		}
		committed := fixedTotal
		for _, m := range members {
			if !m.isFixed && m.clamped {
				committed += m.share
			}
		}
		if committed > targetCells {
			committed = targetCells
		}
		remaining := targetCells - committed

		distributeProportional(items, members, active, remaining)

		newlyClamped := false
		for _, i := range active {
			if members[i].share < members[i].min {
				members[i].share = members[i].min
				members[i].clamped = true
				newlyClamped = true
			}
		}
		if !newlyClamped {
			break
		}
	}

	topUp(items, members, targetCells)

	for _, m := range members {
		out[m.idx] = items[m.idx].Dim.SetInner(m.share)
	}
	return nil
}

func activeIndices(members []spanMember) []int {
	var active []int
	for i, m := range members {
		if !m.clamped {
			active = append(active, i)
		}
	}
	return active
}

// distributeProportional assigns each member in active a share of
// remaining cells proportional to its declared percentage, using the
// largest-remainder method so the shares sum exactly to remaining. Ties
// in fractional remainder are broken by ascending (y,x).
func distributeProportional(items []Item, members []spanMember, active []int, remaining uint) {
	var sumPercent float64
	for _, i := range active {
		sumPercent += members[i].percent
	}
	if sumPercent <= 0 {
		// Degenerate: split evenly.
		each := remaining / uint(len(active))
		leftover := remaining - each*uint(len(active))
		order := sortedByPosition(items, active)
		for _, i := range active {
			members[i].share = each
		}
		for k := 0; k < int(leftover); k++ {
			members[order[k]].share++
		}
		return
	}

	type alloc struct {
		idx  int
		frac float64
	}
	allocs := make([]alloc, len(active))
	var total uint
	for k, i := range active {
		raw := members[i].percent / sumPercent * float64(remaining)
		floor := uint(raw)
		allocs[k] = alloc{idx: i, frac: raw - float64(floor)}
		members[i].share = floor
		total += floor
	}

	leftover := int(remaining) - int(total)
	if leftover > 0 {
		sort.SliceStable(allocs, func(a, b int) bool {
			if allocs[a].frac != allocs[b].frac {
				return allocs[a].frac > allocs[b].frac
			}
			ia, ib := items[allocs[a].idx], items[allocs[b].idx]
			if ia.Y != ib.Y {
				return ia.Y < ib.Y
			}
			return ia.X < ib.X
		})
		for k := 0; k < leftover; k++ {
			members[allocs[k%len(allocs)].idx].share++
		}
	}
}

func sortedByPosition(items []Item, active []int) []int {
	out := make([]int, len(active))
	copy(out, active)
	sort.Slice(out, func(a, b int) bool {
		ia, ib := items[out[a]], items[out[b]]
		if ia.Y != ib.Y {
			return ia.Y < ib.Y
		}
		return ia.X < ib.X
	})
	return out
}

// topUp guarantees the span's realised total equals targetCells exactly
// even in the pathological case where every Percent member clamped to
// its minimum in the same pass and minTotal < targetCells; the leftover
// is handed to the member with the smallest (y,x), matching the same
// tie-break rule used everywhere else in the resizer.
func topUp(items []Item, members []spanMember, targetCells uint) {
	var total uint
	for _, m := range members {
		total += m.share
	}
	if total >= targetCells {
		return
	}
	deficit := targetCells - total
	nonFixed := make([]int, 0, len(members))
	for i, m := range members {
		if !m.isFixed {
			nonFixed = append(nonFixed, i)
		}
	}
	if len(nonFixed) == 0 {
		return
	}
	sort.Slice(nonFixed, func(a, b int) bool {
		ia, ib := items[members[nonFixed[a]].idx], items[members[nonFixed[b]].idx]
		if ia.Y != ib.Y {
			return ia.Y < ib.Y
		}
		return ia.X < ib.X
	})
	members[nonFixed[0]].share += deficit
}
