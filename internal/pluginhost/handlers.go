package pluginhost

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/grid"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

// PaneRef is how an MCP client names a pane over the wire: the registry's
// (Kind, Num) pair spelled out as JSON fields instead of PaneID's Go
// struct, since PaneKind's int constants aren't a stable wire format.
type PaneRef struct {
	Kind string `json:"kind" jsonschema:"required,Pane kind: terminal or plugin"`
	Num  uint32 `json:"num" jsonschema:"required,Pane number"`
}

func (r PaneRef) toPaneID() (paneregistry.PaneID, error) {
	switch r.Kind {
	case "terminal":
		return paneregistry.PaneID{Kind: paneregistry.Terminal, Num: r.Num}, nil
	case "plugin":
		return paneregistry.PaneID{Kind: paneregistry.Plugin, Num: r.Num}, nil
	default:
		return paneregistry.PaneID{}, fmt.Errorf("unknown pane kind %q", r.Kind)
	}
}

func fromPaneID(id paneregistry.PaneID) PaneRef {
	kind := "terminal"
	if id.Kind == paneregistry.Plugin {
		kind = "plugin"
	}
	return PaneRef{Kind: kind, Num: id.Num}
}

func toolResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}
}

// SplitPaneInput omits Active when the grid is empty, matching
// Grid.SplitPane's own "first pane fills the viewport" case.
type SplitPaneInput struct {
	Active      *PaneRef `json:"active,omitempty" jsonschema:"Pane to split; omit only when the grid is empty"`
	CursorRatio float64  `json:"cursor_ratio" jsonschema:"required,Width/height ratio used to choose the split axis"`
}

type SplitPaneOutput struct {
	Pane PaneRef `json:"pane"`
}

func (s *Server) handleSplitPane(ctx context.Context, req *mcpsdk.CallToolRequest, in SplitPaneInput) (*mcpsdk.CallToolResult, SplitPaneOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNum++
	newID := paneregistry.PaneID{Kind: paneregistry.Plugin, Num: s.nextNum}

	var active paneregistry.PaneID
	if in.Active != nil {
		id, err := in.Active.toPaneID()
		if err != nil {
			return nil, SplitPaneOutput{}, err
		}
		active = id
	}

	if err := s.g.SplitPane(active, newID, newPluginPane(int64(s.nextNum)), in.CursorRatio); err != nil {
		return nil, SplitPaneOutput{}, err
	}

	out := SplitPaneOutput{Pane: fromPaneID(newID)}
	return toolResult(fmt.Sprintf("split: new pane %s", newID)), out, nil
}

type ClosePaneInput struct {
	Pane PaneRef `json:"pane" jsonschema:"required,Pane to close"`
}

type ClosePaneOutput struct {
	Closed bool `json:"closed"`
}

func (s *Server) handleClosePane(ctx context.Context, req *mcpsdk.CallToolRequest, in ClosePaneInput) (*mcpsdk.CallToolResult, ClosePaneOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := in.Pane.toPaneID()
	if err != nil {
		return nil, ClosePaneOutput{}, err
	}
	if err := s.g.ClosePane(id); err != nil {
		return nil, ClosePaneOutput{}, err
	}
	return toolResult(fmt.Sprintf("closed %s", id)), ClosePaneOutput{Closed: true}, nil
}

type MoveFocusInput struct {
	Direction string `json:"direction" jsonschema:"required,One of: left, right, up, down"`
}

type MoveFocusOutput struct {
	Focused PaneRef `json:"focused"`
}

func (s *Server) handleMoveFocus(ctx context.Context, req *mcpsdk.CallToolRequest, in MoveFocusInput) (*mcpsdk.CallToolResult, MoveFocusOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch in.Direction {
	case "left":
		err = s.g.MoveFocusLeft()
	case "right":
		err = s.g.MoveFocusRight()
	case "up":
		err = s.g.MoveFocusUp()
	case "down":
		err = s.g.MoveFocusDown()
	default:
		err = fmt.Errorf("unknown direction %q", in.Direction)
	}
	if err != nil {
		return nil, MoveFocusOutput{}, err
	}

	focused, ok := s.g.ActivePaneID()
	if !ok {
		return nil, MoveFocusOutput{}, fmt.Errorf("no pane focused after move_focus")
	}
	out := MoveFocusOutput{Focused: fromPaneID(focused)}
	return toolResult(fmt.Sprintf("focused %s", focused)), out, nil
}

type ChangePaneSizeInput struct {
	Pane      PaneRef `json:"pane" jsonschema:"required,Pane to resize"`
	Resize    string  `json:"resize" jsonschema:"required,One of: increase, decrease"`
	Direction *string `json:"direction,omitempty" jsonschema:"Directed resize side: left, right, up, or down. Omit for an undirected resize."`
	By        uint    `json:"by" jsonschema:"required,Cell count to grow or shrink by"`
}

type ChangePaneSizeOutput struct {
	Applied bool `json:"applied"`
}

func parseDirective(s string) (grid.ResizeDirective, error) {
	switch s {
	case "increase":
		return grid.Increase, nil
	case "decrease":
		return grid.Decrease, nil
	default:
		return 0, fmt.Errorf("unknown resize directive %q", s)
	}
}

func parseDirection(s string) (geometry.Direction, error) {
	switch s {
	case "left":
		return geometry.Left, nil
	case "right":
		return geometry.Right, nil
	case "up":
		return geometry.Up, nil
	case "down":
		return geometry.Down, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

func (s *Server) handleChangePaneSize(ctx context.Context, req *mcpsdk.CallToolRequest, in ChangePaneSizeInput) (*mcpsdk.CallToolResult, ChangePaneSizeOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := in.Pane.toPaneID()
	if err != nil {
		return nil, ChangePaneSizeOutput{}, err
	}
	directive, err := parseDirective(in.Resize)
	if err != nil {
		return nil, ChangePaneSizeOutput{}, err
	}

	strategy := grid.ResizeStrategy{Resize: directive}
	if in.Direction != nil {
		dir, err := parseDirection(*in.Direction)
		if err != nil {
			return nil, ChangePaneSizeOutput{}, err
		}
		strategy.Direction = &dir
	}

	applied, err := s.g.ChangePaneSize(id, strategy, in.By)
	if err != nil {
		return nil, ChangePaneSizeOutput{}, err
	}
	out := ChangePaneSizeOutput{Applied: applied}
	return toolResult(fmt.Sprintf("change_pane_size on %s applied=%v", id, applied)), out, nil
}

type StackPaneInput struct {
	Pane PaneRef `json:"pane" jsonschema:"required,Pane to stack"`
	Side string  `json:"side" jsonschema:"required,One of: up, down, left, right"`
}

type StackPaneOutput struct {
	Stacked bool `json:"stacked"`
}

func (s *Server) handleStackPane(ctx context.Context, req *mcpsdk.CallToolRequest, in StackPaneInput) (*mcpsdk.CallToolResult, StackPaneOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := in.Pane.toPaneID()
	if err != nil {
		return nil, StackPaneOutput{}, err
	}

	switch in.Side {
	case "up":
		err = s.g.StackPaneUp(id)
	case "down":
		err = s.g.StackPaneDown(id)
	case "left":
		err = s.g.StackPaneLeft(id)
	case "right":
		err = s.g.StackPaneRight(id)
	default:
		err = fmt.Errorf("unknown stack side %q", in.Side)
	}
	if err != nil {
		return nil, StackPaneOutput{}, err
	}
	return toolResult(fmt.Sprintf("stacked %s (%s)", id, in.Side)), StackPaneOutput{Stacked: true}, nil
}

type PaneGeometryInput struct {
	Pane PaneRef `json:"pane" jsonschema:"required,Pane to read"`
}

type PaneGeometryOutput struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Cols uint   `json:"cols"`
	Rows uint   `json:"rows"`
	URI  string `json:"uri"`
}

func (s *Server) handlePaneGeometry(ctx context.Context, req *mcpsdk.CallToolRequest, in PaneGeometryInput) (*mcpsdk.CallToolResult, PaneGeometryOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := in.Pane.toPaneID()
	if err != nil {
		return nil, PaneGeometryOutput{}, err
	}
	geom, err := s.g.GetPaneGeom(id)
	if err != nil {
		return nil, PaneGeometryOutput{}, err
	}

	ref := fromPaneID(id)
	uri := fmt.Sprintf(paneURIFormat, ref.Kind, ref.Num)

	out := PaneGeometryOutput{
		X:    geom.Rect.X,
		Y:    geom.Rect.Y,
		Cols: geom.Rect.Cols.AsUsize(),
		Rows: geom.Rect.Rows.AsUsize(),
		URI:  uri,
	}
	return toolResult(fmt.Sprintf("%s at (%d,%d) %dx%d", id, out.X, out.Y, out.Cols, out.Rows)), out, nil
}
