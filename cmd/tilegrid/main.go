// Command tilegrid is the CLI entry point for the pane-grid engine: a
// debug visualizer, a declarative-layout applier, and an MCP plugin
// host, dispatched by subcommand.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "view":
		os.Exit(runView(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tilegrid <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  view                Launch the interactive grid geometry visualizer")
	fmt.Fprintln(w, "  layout apply FILE   Resolve a declarative layout file and print leaf rects")
	fmt.Fprintln(w, "  mcp serve           Start the grid's MCP tool server on stdio")
	fmt.Fprintln(w, "  help                Show this message")
}
