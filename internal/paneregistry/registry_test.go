package paneregistry

import (
	"testing"

	"github.com/1broseidon/tilegrid/internal/dimension"
	"github.com/1broseidon/tilegrid/internal/geometry"
)

// testPane is a minimal Pane implementation used by this package's
// tests.
type testPane struct {
	geom        geometry.PaneGeom
	minW, minH  uint
	selectable  bool
	activatedAt int64
	override    *geometry.PaneGeom
}

func newTestPane(rect geometry.Rect) *testPane {
	return &testPane{
		geom:       geometry.PaneGeom{Rect: rect},
		minW:       DefaultMinWidth,
		minH:       DefaultMinHeight,
		selectable: true,
	}
}

func (p *testPane) Geom() geometry.PaneGeom      { return p.geom }
func (p *testPane) SetGeom(g geometry.PaneGeom)  { p.geom = g }
func (p *testPane) MinWidth() uint               { return p.minW }
func (p *testPane) MinHeight() uint              { return p.minH }
func (p *testPane) Selectable() bool             { return p.selectable }
func (p *testPane) ActivatedAt() int64           { return p.activatedAt }
func (p *testPane) GeomOverride() (geometry.PaneGeom, bool) {
	if p.override == nil {
		return geometry.PaneGeom{}, false
	}
	return *p.override, true
}
func (p *testPane) SetGeomOverride(g geometry.PaneGeom, set bool) {
	if !set {
		p.override = nil
		return
	}
	p.override = &g
}

func fullRect(cols, rows uint) geometry.Rect {
	return geometry.Rect{
		Cols: dimension.Percent(100).SetInner(cols),
		Rows: dimension.Percent(100).SetInner(rows),
	}
}

func TestInsertFirstPaneBecomesFocused(t *testing.T) {
	r := New()
	id := PaneID{Kind: Terminal, Num: 1}
	r.Insert(id, newTestPane(fullRect(80, 24)))

	focused, ok := r.Focused()
	if !ok || focused != id {
		t.Fatalf("expected first pane to be focused")
	}
}

func TestRemoveClearsFocusAndHideSet(t *testing.T) {
	r := New()
	id := PaneID{Kind: Terminal, Num: 1}
	r.Insert(id, newTestPane(fullRect(80, 24)))
	r.Hide(id)

	r.Remove(id)

	if _, ok := r.Get(id); ok {
		t.Fatalf("expected pane removed")
	}
	if r.IsHidden(id) {
		t.Fatalf("expected hide-set entry removed")
	}
	if _, ok := r.Focused(); ok {
		t.Fatalf("expected focus cleared")
	}
}

func TestNextActivePaneBreaksTiesByID(t *testing.T) {
	r := New()
	a := PaneID{Kind: Terminal, Num: 2}
	b := PaneID{Kind: Terminal, Num: 1}
	r.Insert(a, newTestPane(fullRect(40, 24)))
	r.Insert(b, newTestPane(fullRect(40, 24)))

	next, ok := r.NextActivePane([]PaneID{a, b})
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if next != b {
		t.Fatalf("expected tie-break to pick smaller id %v, got %v", b, next)
	}
}

func TestNextActivePaneSkipsUnselectableAndHidden(t *testing.T) {
	r := New()
	a := PaneID{Kind: Terminal, Num: 1}
	b := PaneID{Kind: Terminal, Num: 2}
	pa := newTestPane(fullRect(40, 24))
	pa.selectable = false
	r.Insert(a, pa)
	r.Insert(b, newTestPane(fullRect(40, 24)))
	r.Hide(b)

	_, ok := r.NextActivePane([]PaneID{a, b})
	if ok {
		t.Fatalf("expected no candidate when all are unselectable or hidden")
	}
}

func TestMinWidthDefaultsWhenUnset(t *testing.T) {
	r := New()
	id := PaneID{Kind: Terminal, Num: 1}
	p := newTestPane(fullRect(40, 24))
	p.minW = 0
	r.Insert(id, p)

	if got := r.MinWidth(id); got != DefaultMinWidth {
		t.Fatalf("expected default min width %d, got %d", DefaultMinWidth, got)
	}
}
