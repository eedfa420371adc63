package resize

import (
	"errors"
	"testing"

	"github.com/1broseidon/tilegrid/internal/dimension"
)

func percentItem(id, x, y int, pct float64, min uint, crossLow, crossHigh int) Item {
	return Item{ID: id, X: x, Y: y, Dim: dimension.Percent(pct), Min: min, CrossLow: crossLow, CrossHigh: crossHigh}
}

func TestLayoutEvenSplitSumsToTarget(t *testing.T) {
	items := []Item{
		percentItem(1, 0, 0, 50, 5, 0, 24),
		percentItem(2, 40, 0, 50, 5, 0, 24),
	}
	out, err := Layout(Horizontal, 80, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].AsUsize()+out[1].AsUsize() != 80 {
		t.Fatalf("expected sum 80, got %d+%d", out[0].AsUsize(), out[1].AsUsize())
	}
	if out[0].AsUsize() != 40 || out[1].AsUsize() != 40 {
		t.Fatalf("expected 40/40, got %d/%d", out[0].AsUsize(), out[1].AsUsize())
	}
}

func TestLayoutTwoIndependentSpans(t *testing.T) {
	// Row 1: two panes side by side at y=0..12. Row 2: one full-width pane at y=12..24.
	items := []Item{
		percentItem(1, 0, 0, 50, 5, 0, 12),
		percentItem(2, 40, 0, 50, 5, 0, 12),
		percentItem(3, 0, 12, 100, 5, 12, 24),
	}
	out, err := Layout(Horizontal, 100, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].AsUsize()+out[1].AsUsize() != 100 {
		t.Fatalf("row span should sum to 100, got %d+%d", out[0].AsUsize(), out[1].AsUsize())
	}
	if out[2].AsUsize() != 100 {
		t.Fatalf("solo span should realise full target, got %d", out[2].AsUsize())
	}
}

func TestLayoutClampsToMinimumAndRedistributes(t *testing.T) {
	items := []Item{
		percentItem(1, 0, 0, 90, 5, 0, 24),
		percentItem(2, 90, 0, 10, 50, 0, 24), // 10% of 100 would be 10, below its min of 50
	}
	out, err := Layout(Horizontal, 100, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[1].AsUsize() != 50 {
		t.Fatalf("expected clamped member at its minimum 50, got %d", out[1].AsUsize())
	}
	if out[0].AsUsize() != 50 {
		t.Fatalf("expected the other member absorbs the deficit down to 50, got %d", out[0].AsUsize())
	}
}

func TestLayoutInfeasibleWhenMinimaExceedTarget(t *testing.T) {
	items := []Item{
		percentItem(1, 0, 0, 50, 60, 0, 24),
		percentItem(2, 40, 0, 50, 60, 0, 24),
	}
	_, err := Layout(Horizontal, 100, items)
	if err == nil {
		t.Fatalf("expected infeasible layout error")
	}
	var infeasible *InfeasibleLayoutError
	if !errors.As(err, &infeasible) {
		t.Fatalf("expected InfeasibleLayoutError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrInfeasibleLayout) {
		t.Fatalf("expected errors.Is to match ErrInfeasibleLayout")
	}
}

func TestLayoutFixedDimensionNeverAdjusted(t *testing.T) {
	items := []Item{
		{ID: 1, X: 0, Y: 0, Dim: dimension.Fixed(20), CrossLow: 0, CrossHigh: 24},
		percentItem(2, 20, 0, 100, 5, 0, 24),
	}
	out, err := Layout(Horizontal, 100, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out[0].IsFixed() || out[0].AsUsize() != 20 {
		t.Fatalf("expected fixed dimension unchanged at 20, got %v", out[0])
	}
	if out[1].AsUsize() != 80 {
		t.Fatalf("expected percent member to absorb the rest (80), got %d", out[1].AsUsize())
	}
}

func TestLayoutTieBreakSmallerPositionGetsExtraCell(t *testing.T) {
	// Three equal-percent members splitting 100 cells: 100/3 = 33.33 each,
	// one extra cell must go to the smallest (y,x).
	items := []Item{
		percentItem(1, 0, 0, 100.0/3.0, 5, 0, 24),
		percentItem(2, 34, 0, 100.0/3.0, 5, 0, 24),
		percentItem(3, 67, 0, 100.0/3.0, 5, 0, 24),
	}
	out, err := Layout(Horizontal, 100, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := out[0].AsUsize() + out[1].AsUsize() + out[2].AsUsize()
	if total != 100 {
		t.Fatalf("expected total 100, got %d", total)
	}
	if out[0].AsUsize() != 34 {
		t.Fatalf("expected the leftmost member to receive the extra cell, got %d", out[0].AsUsize())
	}
}
