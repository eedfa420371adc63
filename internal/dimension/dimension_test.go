package dimension

import "testing"

func TestPercentClampsDeclaredRange(t *testing.T) {
	d := Percent(150)
	p, ok := d.AsPercent()
	if !ok {
		t.Fatalf("expected a percent dimension")
	}
	if p != 100 {
		t.Fatalf("expected clamp to 100, got %v", p)
	}
}

func TestFixedNeverReportsPercent(t *testing.T) {
	d := Fixed(10)
	if !d.IsFixed() {
		t.Fatalf("expected IsFixed")
	}
	if _, ok := d.AsPercent(); ok {
		t.Fatalf("expected AsPercent to fail for Fixed")
	}
	if d.AsUsize() != 10 {
		t.Fatalf("expected AsUsize=10, got %d", d.AsUsize())
	}
}

func TestDecreaseInnerSaturatesAtZero(t *testing.T) {
	d := Fixed(3).DecreaseInner(10)
	if d.AsUsize() != 0 {
		t.Fatalf("expected saturation to 0, got %d", d.AsUsize())
	}
}

func TestReduceByDoesNotChangeKind(t *testing.T) {
	d := Percent(50)
	d = d.ReduceBy(10, 0)
	if !d.IsPercent() {
		t.Fatalf("expected still Percent after ReduceBy")
	}
	p, _ := d.AsPercent()
	if p != 40 {
		t.Fatalf("expected 40, got %v", p)
	}

	f := Fixed(20)
	f = f.ReduceBy(10, 5)
	if !f.IsFixed() {
		t.Fatalf("expected still Fixed after ReduceBy")
	}
	if f.AsUsize() != 15 {
		t.Fatalf("expected 15, got %d", f.AsUsize())
	}
}

func TestIncreaseInnerTracksCache(t *testing.T) {
	d := Percent(50).SetInner(40)
	d = d.IncreaseInner(5)
	if d.AsUsize() != 45 {
		t.Fatalf("expected 45, got %d", d.AsUsize())
	}
}
