package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/tilegrid/internal/grid"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
	"github.com/1broseidon/tilegrid/internal/pluginhost"
)

func printMCPUsage(w *os.File) {
	fmt.Fprintln(w, "Usage: tilegrid mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tilegrid mcp serve --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	fs := flag.NewFlagSet("mcp serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	width := fs.Uint("width", 120, "grid viewport width in cells, for clients that never send a resize")
	height := fs.Uint("height", 40, "grid viewport height in cells, for clients that never send a resize")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: tilegrid mcp serve [--width N] [--height N]")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Start the grid's MCP server on stdio. The grid starts empty; the")
		fmt.Fprintln(os.Stdout, "first split_pane call fills it. Designed to be invoked by MCP")
		fmt.Fprintln(os.Stdout, "clients such as Claude Code or Claude Desktop.")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Example (Claude Code):")
		fmt.Fprintln(os.Stdout, "  claude mcp add tilegrid -- tilegrid mcp serve")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	reg := paneregistry.New()
	g := grid.New(reg, *width, *height, grid.Margins{})
	server := pluginhost.NewServer(g)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "mcp server error:", err)
		return 1
	}
	return 0
}
