// Package gridview is a bubbletea debug harness that renders a grid's
// pane geometry as labelled boxes: rects, stack membership, and focus,
// never pane content.
package gridview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tilegrid/internal/geometry"
	"github.com/1broseidon/tilegrid/internal/grid"
	"github.com/1broseidon/tilegrid/internal/paneregistry"
)

const legendWidth = 28

var (
	borderStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	focusedBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	labelStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// paneItem adapts one pane's id and geometry to bubbles/list's Item
// interface for the legend sidebar.
type paneItem struct {
	id       paneregistry.PaneID
	rect     geometry.Rect
	focused  bool
	stacked  bool
	selected bool
}

func (i paneItem) Title() string {
	marker := "  "
	if i.focused {
		marker = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Render("▶ ")
	}
	return marker + i.id.String()
}

func (i paneItem) Description() string {
	tag := ""
	if i.stacked {
		tag = " [stacked]"
	}
	if !i.selected {
		tag += " [unselectable]"
	}
	return fmt.Sprintf("%dx%d @ (%d,%d)%s", i.rect.Cols.AsUsize(), i.rect.Rows.AsUsize(), i.rect.X, i.rect.Y, tag)
}

func (i paneItem) FilterValue() string { return i.id.String() }

// Model is the root bubbletea model. Color is whether the legend and
// canvas should emit ANSI color, decided by the caller (cmd/tilegrid)
// via colorprofile so this package never touches os.Stdout itself.
type Model struct {
	g      *grid.Grid
	legend list.Model
	color  bool
	width  int
	height int
	err    error
}

// NewModel builds a gridview model over g. color should come from the
// caller's own colorprofile detection.
func NewModel(g *grid.Grid, color bool) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, legendWidth, 10)
	l.Title = "Panes"
	l.SetShowHelp(false)
	return Model{g: g, legend: l, color: color}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		canvasWidth := m.width - legendWidth
		if canvasWidth < 1 {
			canvasWidth = 1
		}
		if err := m.g.ResizeWholeTab(uint(canvasWidth), uint(m.height)); err != nil {
			m.err = err
		}
		m.legend.SetSize(legendWidth, m.height)
		m.legend.SetItems(m.paneItems())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.err = m.g.MoveFocusLeft()
		case "right", "l":
			m.err = m.g.MoveFocusRight()
		case "up", "k":
			m.err = m.g.MoveFocusUp()
		case "down", "j":
			m.err = m.g.MoveFocusDown()
		case "tab":
			m.err = m.g.FocusNextPane()
		case "shift+tab":
			m.err = m.g.FocusPreviousPane()
		}
		m.legend.SetItems(m.paneItems())
	}

	var cmd tea.Cmd
	m.legend, cmd = m.legend.Update(msg)
	return m, cmd
}

func (m Model) paneItems() []list.Item {
	active, _ := m.g.ActivePaneID()
	ids := m.g.PaneIDs()
	items := make([]list.Item, 0, len(ids))
	for _, id := range ids {
		geom, err := m.g.GetPaneGeom(id)
		if err != nil {
			continue
		}
		items = append(items, paneItem{
			id:       id,
			rect:     geom.Rect,
			focused:  id == active,
			stacked:  geom.Stacked != nil,
			selected: true,
		})
	}
	return items
}

// View renders the canvas (pane rects drawn as box-character borders
// with centered id labels) beside the legend list.
func (m Model) View() string {
	canvasWidth := m.width - legendWidth
	if canvasWidth < 1 || m.height < 1 {
		return "resize terminal..."
	}
	canvas := m.renderCanvas(canvasWidth, m.height)
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.legend.View())
}

func (m Model) renderCanvas(width, height int) string {
	buf := make([][]rune, height)
	for y := range buf {
		buf[y] = make([]rune, width)
		for x := range buf[y] {
			buf[y][x] = ' '
		}
	}

	active, _ := m.g.ActivePaneID()
	var focusedLabel string
	for _, id := range m.g.PaneIDs() {
		geom, err := m.g.GetPaneGeom(id)
		if err != nil {
			continue
		}
		label := id.String()
		drawBox(buf, geom.Rect, label)
		if id == active {
			focusedLabel = label
		}
	}

	var b strings.Builder
	for _, row := range buf {
		line := string(row)
		if m.color && focusedLabel != "" && strings.Contains(line, focusedLabel) {
			line = strings.Replace(line, focusedLabel, focusedBorderStyle.Render(focusedLabel), 1)
		} else if m.color {
			line = labelStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// drawBox writes r's border and a centered label into buf, one rune per
// cell, leaving color entirely to the caller (renderCanvas applies it
// to finished lines, never to buf itself, so an ANSI escape sequence
// never lands split across cells).
func drawBox(buf [][]rune, r geometry.Rect, label string) {
	height := len(buf)
	if height == 0 {
		return
	}
	width := len(buf[0])

	x0, y0 := r.X, r.Y
	x1, y1 := r.Right()-1, r.Bottom()-1
	if x0 < 0 || y0 < 0 || x1 >= width || y1 >= height || x1 < x0 || y1 < y0 {
		return
	}

	set := func(x, y int, c rune) {
		if x >= 0 && x < width && y >= 0 && y < height {
			buf[y][x] = c
		}
	}

	for x := x0; x <= x1; x++ {
		set(x, y0, '─')
		set(x, y1, '─')
	}
	for y := y0; y <= y1; y++ {
		set(x0, y, '│')
		set(x1, y, '│')
	}
	set(x0, y0, '┌')
	set(x1, y0, '┐')
	set(x0, y1, '└')
	set(x1, y1, '┘')

	labelStart := x0 + 1 + (x1-x0-1-len([]rune(label)))/2
	if labelStart < x0+1 {
		labelStart = x0 + 1
	}
	midY := (y0 + y1) / 2
	for i, c := range []rune(label) {
		if labelStart+i >= x1 {
			break
		}
		set(labelStart+i, midY, c)
	}
}
