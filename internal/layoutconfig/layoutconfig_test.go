package layoutconfig

import (
	"testing"

	"github.com/1broseidon/tilegrid/internal/dimension"
	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/grid"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

type fakePane struct {
	geom geometry.PaneGeom
}

func (p *fakePane) Geom() geometry.PaneGeom                       { return p.geom }
func (p *fakePane) SetGeom(g geometry.PaneGeom)                   { p.geom = g }
func (p *fakePane) MinWidth() uint                                { return paneregistry.DefaultMinWidth }
func (p *fakePane) MinHeight() uint                               { return paneregistry.DefaultMinHeight }
func (p *fakePane) Selectable() bool                              { return true }
func (p *fakePane) ActivatedAt() int64                            { return 0 }
func (p *fakePane) GeomOverride() (geometry.PaneGeom, bool)       { return geometry.PaneGeom{}, false }
func (p *fakePane) SetGeomOverride(g geometry.PaneGeom, set bool) {}

var defaults = Defaults{MinPaneWidth: 5, MinPaneHeight: 5}

func twoColumnTemplate() Template {
	return Template{
		Name: "two-column",
		Root: Node{
			Axis: AxisCols,
			Children: []Node{
				{Size: SizeConstraint{Percent: 60, Min: 10}},
				{Size: SizeConstraint{Percent: 40, Min: 10}},
			},
		},
	}
}

func TestResolveSplitsByDeclaredPercent(t *testing.T) {
	available := geometry.Rect{X: 0, Y: 0, Cols: dimension.Fixed(100), Rows: dimension.Fixed(30)}
	rects, _, err := Resolve(twoColumnTemplate(), available, defaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rects) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(rects))
	}
	if rects[0].Cols.AsUsize() != 60 || rects[1].Cols.AsUsize() != 40 {
		t.Fatalf("expected 60/40 split, got %d/%d", rects[0].Cols.AsUsize(), rects[1].Cols.AsUsize())
	}
	if rects[1].X != 60 {
		t.Fatalf("expected second leaf at x=60, got %d", rects[1].X)
	}
}

func TestResolveSwapsToFallbackWhenRootDoesNotFit(t *testing.T) {
	template := twoColumnTemplate()
	template.Fallbacks = []Node{
		{
			Axis: AxisRows,
			Children: []Node{
				{Size: SizeConstraint{Percent: 50, Min: 5}},
				{Size: SizeConstraint{Percent: 50, Min: 5}},
			},
		},
	}

	// Too narrow for the two-column root's 10-cell minimums on each side
	// (needs >= 20 cols) but plenty tall for the stacked fallback.
	available := geometry.Rect{X: 0, Y: 0, Cols: dimension.Fixed(12), Rows: dimension.Fixed(30)}
	rects, root, err := Resolve(template, available, defaults)
	if err != nil {
		t.Fatalf("expected fallback to fit, got error: %v", err)
	}
	if root.Axis != AxisRows {
		t.Fatalf("expected the stacked fallback to be chosen, got axis %q", root.Axis)
	}
	if len(rects) != 2 || rects[0].Rows.AsUsize()+rects[1].Rows.AsUsize() != 30 {
		t.Fatalf("expected rows to sum to 30, got %+v", rects)
	}
}

func TestResolveFailsWhenNoRootOrFallbackFits(t *testing.T) {
	available := geometry.Rect{X: 0, Y: 0, Cols: dimension.Fixed(4), Rows: dimension.Fixed(4)}
	if _, _, err := Resolve(twoColumnTemplate(), available, defaults); err == nil {
		t.Fatalf("expected an error when nothing fits")
	}
}

func TestApplyPlacesPanesIntoResolvedLeaves(t *testing.T) {
	reg := paneregistry.New()
	g := grid.New(reg, 100, 30, grid.Margins{})

	id1 := paneregistry.PaneID{Kind: paneregistry.Terminal, Num: 1}
	id2 := paneregistry.PaneID{Kind: paneregistry.Terminal, Num: 2}
	panes := []LeafPane{
		{ID: id1, Pane: &fakePane{}},
		{ID: id2, Pane: &fakePane{}},
	}

	if _, err := Apply(g, twoColumnTemplate(), defaults, panes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g1, err := g.GetPaneGeom(id1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g2, err := g.GetPaneGeom(id2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g1.Rect.Cols.AsUsize() != 60 || g2.Rect.Cols.AsUsize() != 40 {
		t.Fatalf("expected 60/40 split, got %d/%d", g1.Rect.Cols.AsUsize(), g2.Rect.Cols.AsUsize())
	}
}
