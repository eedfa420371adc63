package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/tilegrid/internal/grid"
	"github.com/1broseidon/tilegrid/internal/layoutconfig"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

func runLayout(args []string) int {
	if len(args) == 0 {
		printLayoutUsage(os.Stderr)
		return 2
	}
	switch args[0] {
	case "apply":
		return runLayoutApply(args[1:])
	case "help", "-h", "--help":
		printLayoutUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown layout command: %s\n\n", args[0])
		printLayoutUsage(os.Stderr)
		return 2
	}
}

func printLayoutUsage(w *os.File) {
	fmt.Fprintln(w, "Usage: tilegrid layout apply FILE [--template NAME]")
}

func runLayoutApply(args []string) int {
	fs := flag.NewFlagSet("layout apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	templateName := fs.String("template", "", "template name to apply (default: first template in the file)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: tilegrid layout apply FILE [--template NAME]")
		return 2
	}

	file, err := layoutconfig.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var tmpl layoutconfig.Template
	if *templateName != "" {
		t, ok := file.Template(*templateName)
		if !ok {
			fmt.Fprintf(os.Stderr, "no template named %q in %s\n", *templateName, fs.Arg(0))
			return 1
		}
		tmpl = t
	} else if len(file.Templates) > 0 {
		tmpl = file.Templates[0]
	} else {
		fmt.Fprintln(os.Stderr, "layout file declares no templates")
		return 1
	}

	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w == 0 || h == 0 {
		w, h = 80, 24
	}

	reg := paneregistry.New()
	g := grid.New(reg, uint(w), uint(h), grid.Margins{})

	leafCount, err := countLeaves(tmpl.Root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	panes := make([]layoutconfig.LeafPane, leafCount)
	for i := range panes {
		panes[i] = layoutconfig.LeafPane{
			ID:   paneregistry.PaneID{Kind: paneregistry.Plugin, Num: uint32(i + 1)},
			Pane: &blankPane{},
		}
	}

	root, err := layoutconfig.Apply(g, tmpl, file.Defaults, panes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("applied template %q (axis=%s)\n", tmpl.Name, root.Axis)
	for _, lp := range panes {
		geom, err := g.GetPaneGeom(lp.ID)
		if err != nil {
			continue
		}
		fmt.Printf("  %s: %dx%d @ (%d,%d)\n", lp.ID, geom.Rect.Cols.AsUsize(), geom.Rect.Rows.AsUsize(), geom.Rect.X, geom.Rect.Y)
	}
	return 0
}

func countLeaves(n layoutconfig.Node) (int, error) {
	if len(n.Children) == 0 {
		return 1, nil
	}
	total := 0
	for _, c := range n.Children {
		count, err := countLeaves(c)
		if err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}
