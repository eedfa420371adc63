package gridview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/grid"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

type stubPane struct {
	geom        geometry.PaneGeom
	activatedAt int64
	override    *geometry.PaneGeom
}

func newStubPane(activatedAt int64) *stubPane {
	return &stubPane{activatedAt: activatedAt}
}

func (p *stubPane) Geom() geometry.PaneGeom     { return p.geom }
func (p *stubPane) SetGeom(g geometry.PaneGeom) { p.geom = g }
func (p *stubPane) MinWidth() uint              { return 5 }
func (p *stubPane) MinHeight() uint             { return 5 }
func (p *stubPane) Selectable() bool            { return true }
func (p *stubPane) ActivatedAt() int64          { return p.activatedAt }
func (p *stubPane) GeomOverride() (geometry.PaneGeom, bool) {
	if p.override == nil {
		return geometry.PaneGeom{}, false
	}
	return *p.override, true
}
func (p *stubPane) SetGeomOverride(g geometry.PaneGeom, set bool) {
	if !set {
		p.override = nil
		return
	}
	p.override = &g
}

func newGridWithPanes(t *testing.T, n int) *grid.Grid {
	t.Helper()
	reg := paneregistry.New()
	g := grid.New(reg, 80, 24, grid.Margins{})
	var active paneregistry.PaneID
	for i := 0; i < n; i++ {
		id := paneregistry.PaneID{Kind: paneregistry.Plugin, Num: uint32(i + 1)}
		if err := g.SplitPane(active, id, newStubPane(int64(i)), 4.0); err != nil {
			t.Fatalf("split %d: %v", i, err)
		}
		active = id
	}
	return g
}

func TestUpdateWindowSizeResizesGridAndPopulatesLegend(t *testing.T) {
	g := newGridWithPanes(t, 2)
	m := NewModel(g, false)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	mm := updated.(Model)

	if len(mm.legend.Items()) != 2 {
		t.Fatalf("expected 2 legend items, got %d", len(mm.legend.Items()))
	}
}

func TestUpdateMoveFocusChangesActivePane(t *testing.T) {
	g := newGridWithPanes(t, 2)
	m := NewModel(g, false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	mm := updated.(Model)

	before, _ := g.ActivePaneID()

	updated, _ = mm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	mm = updated.(Model)

	after, _ := g.ActivePaneID()
	if after == before {
		t.Fatalf("expected focus to move left, active pane unchanged: %s", after)
	}
}

func TestRenderCanvasDrawsBoxesForEachPane(t *testing.T) {
	g := newGridWithPanes(t, 2)
	m := NewModel(g, false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	mm := updated.(Model)

	out := mm.View()
	if !strings.Contains(out, "┌") || !strings.Contains(out, "┘") {
		t.Fatalf("expected box-drawing characters in output, got:\n%s", out)
	}
	for _, id := range g.PaneIDs() {
		if !strings.Contains(out, id.String()) {
			t.Fatalf("expected pane label %q in output", id.String())
		}
	}
}
