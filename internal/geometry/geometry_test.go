package geometry

import (
	"testing"

	"github.com/1broseidon/tilegrid/internal/dimension"
)

func fullRect(cols, rows uint) Rect {
	return Rect{
		Cols: dimension.Percent(100).SetInner(cols),
		Rows: dimension.Percent(100).SetInner(rows),
	}
}

func TestSplitRightDividesColsEvenly(t *testing.T) {
	rect := fullRect(80, 24)
	first, second, ok := Split(Right, rect)
	if !ok {
		t.Fatalf("expected split to succeed")
	}
	if first.Cols.AsUsize() != 40 || second.Cols.AsUsize() != 40 {
		t.Fatalf("expected 40/40 split, got %d/%d", first.Cols.AsUsize(), second.Cols.AsUsize())
	}
	if second.X != 40 {
		t.Fatalf("expected second.X=40, got %d", second.X)
	}
	if first.Rows.AsUsize() != 24 || second.Rows.AsUsize() != 24 {
		t.Fatalf("expected full height preserved on both panes")
	}
}

func TestSplitFixedAxisFails(t *testing.T) {
	rect := Rect{Cols: dimension.Fixed(10), Rows: dimension.Percent(100).SetInner(24)}
	_, _, ok := Split(Right, rect)
	if ok {
		t.Fatalf("expected split on a fixed axis to fail")
	}
}

func TestContainsHalfOpen(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Cols: dimension.Percent(100).SetInner(10), Rows: dimension.Percent(100).SetInner(10)}
	if !rect.Contains(Point{0, 0}) {
		t.Fatalf("expected origin inside")
	}
	if rect.Contains(Point{10, 0}) {
		t.Fatalf("expected right edge excluded")
	}
	if rect.Contains(Point{9, 9}) == false {
		t.Fatalf("expected bottom-right inside corner included")
	}
}

func TestOverlapPredicates(t *testing.T) {
	a := Rect{X: 0, Y: 0, Cols: dimension.Percent(50).SetInner(40), Rows: dimension.Percent(100).SetInner(24)}
	b := Rect{X: 40, Y: 0, Cols: dimension.Percent(50).SetInner(40), Rows: dimension.Percent(100).SetInner(24)}
	if a.HorizontallyOverlaps(b) {
		t.Fatalf("adjacent panes should not horizontally overlap")
	}
	if !a.VerticallyOverlaps(b) {
		t.Fatalf("panes sharing the same y-range should vertically overlap")
	}
}
