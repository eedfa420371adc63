package pluginhost

import (
	"context"
	"testing"

	"github.com/1broseidon/tilegrid/internal/grid"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := paneregistry.New()
	g := grid.New(reg, 80, 24, grid.Margins{})
	return NewServer(g)
}

func TestSplitPaneFillsEmptyGrid(t *testing.T) {
	s := newTestServer(t)
	_, out, err := s.handleSplitPane(context.Background(), nil, SplitPaneInput{CursorRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Pane.Kind != "plugin" || out.Pane.Num != 1 {
		t.Fatalf("expected plugin-1, got %+v", out.Pane)
	}

	geomOut, geomRes, err := s.handlePaneGeometry(context.Background(), nil, PaneGeometryInput{Pane: out.Pane})
	_ = geomOut
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geomRes.Cols != 80 || geomRes.Rows != 24 {
		t.Fatalf("expected the lone pane to fill the viewport, got %dx%d", geomRes.Cols, geomRes.Rows)
	}
	if want := "pane://plugin-1/geometry"; geomRes.URI != want {
		t.Fatalf("expected uri %q, got %q", want, geomRes.URI)
	}
}

func TestSplitPaneThenCloseReclaimsSpace(t *testing.T) {
	s := newTestServer(t)
	_, first, err := s.handleSplitPane(context.Background(), nil, SplitPaneInput{CursorRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, second, err := s.handleSplitPane(context.Background(), nil, SplitPaneInput{Active: &first.Pane, CursorRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := s.handleClosePane(context.Background(), nil, ClosePaneInput{Pane: second.Pane}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, geomRes, err := s.handlePaneGeometry(context.Background(), nil, PaneGeometryInput{Pane: first.Pane})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geomRes.Cols != 80 || geomRes.Rows != 24 {
		t.Fatalf("expected close to reclaim the full viewport, got %dx%d", geomRes.Cols, geomRes.Rows)
	}
}

func TestMoveFocusBetweenTwoPanes(t *testing.T) {
	s := newTestServer(t)
	_, first, err := s.handleSplitPane(context.Background(), nil, SplitPaneInput{CursorRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A high cursor ratio forces a horizontal (left/right) split instead
	// of the vertical split a 1.0 ratio would choose on an 80x24 viewport.
	if _, _, err := s.handleSplitPane(context.Background(), nil, SplitPaneInput{Active: &first.Pane, CursorRatio: 4.0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, out, err := s.handleMoveFocus(context.Background(), nil, MoveFocusInput{Direction: "left"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Focused != first.Pane {
		t.Fatalf("expected focus to move to %+v, got %+v", first.Pane, out.Focused)
	}
}

func TestChangePaneSizeRejectsUnknownDirective(t *testing.T) {
	s := newTestServer(t)
	_, first, err := s.handleSplitPane(context.Background(), nil, SplitPaneInput{CursorRatio: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := s.handleChangePaneSize(context.Background(), nil, ChangePaneSizeInput{
		Pane:   first.Pane,
		Resize: "sideways",
		By:     5,
	}); err == nil {
		t.Fatalf("expected an error for an unknown resize directive")
	}
}
