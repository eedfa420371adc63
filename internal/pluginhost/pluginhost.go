// Package pluginhost exposes one tab's grid as a set of MCP tools,
// standing in for the spec's excluded WebAssembly plugin host: here a
// "plugin" is any MCP client speaking stdio, and the grid structural
// operations (split, close, move_focus, change_pane_size, stack_pane)
// are the surface it drives, rather than a WASM ABI. Grounded on
// internal/mcp/server.go (NewServer/registerTools/AddTool shape) and
// internal/mcp/tools.go (typed-struct handlers with jsonschema tags).
package pluginhost

import (
	"context"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tilegrid/internal/grid"
)

const (
	ServerName    = "tilegrid"
	ServerVersion = "0.1.0"
)

// paneURIFormat names a pane's geometry resource the way a plugin
// addresses a pane by URI rather than by bare id pair. Built with
// fmt.Sprintf rather than github.com/yosida95/uritemplate/v3: that
// package is a transitive dependency of modelcontextprotocol/go-sdk
// (never imported directly by any tool-registration code here either),
// and its exact Values/Expand API shape isn't available to verify, so a
// literal format string is the honest choice over a guessed call.
const paneURIFormat = "pane://%s-%d/geometry"

// Server is the MCP host wrapping one *grid.Grid.
type Server struct {
	mcpServer *mcpsdk.Server
	g         *grid.Grid

	mu      sync.Mutex
	nextNum uint32
}

// NewServer builds an MCP server exposing g's structural operations as
// tools, registering them eagerly so Run can start serving immediately.
func NewServer(g *grid.Grid) *Server {
	s := &Server{
		g: g,
		mcpServer: mcpsdk.NewServer(&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "split_pane",
		Description: "Split the active pane (or fill an empty grid) with a new plugin-backed pane. Returns the new pane's id.",
	}, s.handleSplitPane)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_pane",
		Description: "Close a pane by id, letting an aligning neighbour (or a whole-tab reflow) reclaim its space.",
	}, s.handleClosePane)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_focus",
		Description: "Move focus left, right, up, or down from the currently focused pane, wrapping to the opposite edge when there is no neighbour.",
	}, s.handleMoveFocus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "change_pane_size",
		Description: "Grow or shrink a pane by a cell count, optionally toward a specific direction.",
	}, s.handleChangePaneSize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "stack_pane",
		Description: "Join a pane into a vertical stack with its neighbour on the given side (up, down, left, or right).",
	}, s.handleStackPane)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "pane_geometry",
		Description: "Read a pane's current rect and its pane://<id>/geometry resource URI.",
	}, s.handlePaneGeometry)
}
