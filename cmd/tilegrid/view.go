package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"

	"github.com/1broseidon/tilegrid/internal/gridview"
	"github.com/1broseidon/tilegrid/internal/grid"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

func runView(args []string) int {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	panes := fs.Int("panes", 4, "number of demo panes to seed the grid with")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: tilegrid view [--panes N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Renders a grid's pane rects and focus as labelled boxes. No pane")
		fmt.Fprintln(os.Stderr, "content is shown, only geometry.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  h/l, Left/Right   Move focus left/right")
		fmt.Fprintln(os.Stderr, "  j/k, Up/Down      Move focus down/up")
		fmt.Fprintln(os.Stderr, "  Tab / Shift+Tab   Cycle focus spatially")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C         Quit")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "tilegrid view requires an interactive terminal")
		return 1
	}

	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h = 80, 24
	}

	reg := paneregistry.New()
	g := grid.New(reg, uint(w), uint(h), grid.Margins{})
	if err := seedDemoPanes(g, *panes); err != nil {
		fmt.Fprintln(os.Stderr, "seeding demo panes:", err)
		return 1
	}

	profile := colorprofile.Detect(os.Stdout, os.Environ())
	color := profile > colorprofile.Ascii

	m := gridview.NewModel(g, color)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// seedDemoPanes repeatedly splits the active pane so there is something
// for the visualizer to show. Real geometry/focus/resize calls are the
// same regardless of what backs a pane's content, so a blank pane is
// enough to exercise every binding the debug harness drives.
func seedDemoPanes(g *grid.Grid, n int) error {
	if n < 1 {
		n = 1
	}
	var active paneregistry.PaneID
	for i := 0; i < n; i++ {
		id := paneregistry.PaneID{Kind: paneregistry.Plugin, Num: uint32(i + 1)}
		if err := g.SplitPane(active, id, &blankPane{activatedAt: int64(i)}, 1.0); err != nil {
			return err
		}
		active = id
	}
	return nil
}
