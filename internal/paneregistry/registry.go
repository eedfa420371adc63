// Package paneregistry implements the pane-id-to-pane mapping the grid
// mutates: an arena of panes indexed by a stable id, a hide-set, and
// focus tracking. Per the source design note, this replaces the
// interior-mutability trait-object map of the original with a plain
// arena so callers take either &Registry (query) or *Registry
// (mutate) explicitly.
package paneregistry

import (
	"fmt"
	"sort"

	"github.com/1broseidon/tilegrid/internal/geometry"
)

// PaneKind distinguishes a PTY-backed terminal pane from a
// plugin-backed one. The registry does not care which collaborator owns
// a pane's content; it only needs identity and capability.
type PaneKind int

const (
	Terminal PaneKind = iota
	Plugin
)

// PaneID is a stable, never-reused identifier for a pane's lifetime.
type PaneID struct {
	Kind PaneKind
	Num  uint32
}

func (id PaneID) String() string {
	if id.Kind == Plugin {
		return fmt.Sprintf("plugin(%d)", id.Num)
	}
	return fmt.Sprintf("terminal(%d)", id.Num)
}

// DefaultMinWidth and DefaultMinHeight are the per-pane minima applied
// when a pane does not declare its own.
const (
	DefaultMinWidth  = 5
	DefaultMinHeight = 5
)

// Pane is the capability set the grid needs from a registered pane. VTE-
// and plugin-backed panes implement it; the grid itself never depends on
// their concrete types.
type Pane interface {
	Geom() geometry.PaneGeom
	SetGeom(geometry.PaneGeom)
	MinWidth() uint
	MinHeight() uint
	Selectable() bool
	ActivatedAt() int64
	GeomOverride() (geometry.PaneGeom, bool)
	SetGeomOverride(geometry.PaneGeom, bool)
}

// Registry owns every pane in one tab's grid. References it hands out
// are bounded by the scope of the grid operation that requested them.
type Registry struct {
	panes    map[PaneID]Pane
	hidden   map[PaneID]struct{}
	focused  *PaneID
	order    []PaneID // insertion order, used for deterministic iteration
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		panes:  make(map[PaneID]Pane),
		hidden: make(map[PaneID]struct{}),
	}
}

// Insert adds a pane under id, replacing any pane previously registered
// there. If no pane is currently focused, id becomes focused.
func (r *Registry) Insert(id PaneID, p Pane) {
	if _, exists := r.panes[id]; !exists {
		r.order = append(r.order, id)
	}
	r.panes[id] = p
	if r.focused == nil {
		f := id
		r.focused = &f
	}
}

// Remove deletes id from the registry and its hide-set. If id was
// focused, focus is cleared; the caller is responsible for assigning a
// successor.
func (r *Registry) Remove(id PaneID) {
	delete(r.panes, id)
	delete(r.hidden, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.focused != nil && *r.focused == id {
		r.focused = nil
	}
}

// Get returns the pane registered under id.
func (r *Registry) Get(id PaneID) (Pane, bool) {
	p, ok := r.panes[id]
	return p, ok
}

// MustGet returns the pane registered under id, or an error naming id.
func (r *Registry) MustGet(id PaneID) (Pane, error) {
	p, ok := r.panes[id]
	if !ok {
		return nil, fmt.Errorf("no pane with id %s", id)
	}
	return p, nil
}

// Len returns the number of registered panes.
func (r *Registry) Len() int {
	return len(r.panes)
}

// PaneIDs returns every registered pane id in insertion order.
func (r *Registry) PaneIDs() []PaneID {
	out := make([]PaneID, len(r.order))
	copy(out, r.order)
	return out
}

// Hide adds id to the hide-set.
func (r *Registry) Hide(id PaneID) {
	r.hidden[id] = struct{}{}
}

// Show removes id from the hide-set.
func (r *Registry) Show(id PaneID) {
	delete(r.hidden, id)
}

// IsHidden reports whether id is in the hide-set.
func (r *Registry) IsHidden(id PaneID) bool {
	_, ok := r.hidden[id]
	return ok
}

// Focused returns the currently focused pane id, if any.
func (r *Registry) Focused() (PaneID, bool) {
	if r.focused == nil {
		return PaneID{}, false
	}
	return *r.focused, true
}

// SetFocused sets the focused pane id without validating selectability;
// callers that must respect I4 (focused pane selectable and visible)
// should check Selectable()/IsHidden() themselves, as the grid's
// SetFocused entry point does.
func (r *Registry) SetFocused(id PaneID) {
	f := id
	r.focused = &f
}

// ClearFocused clears the focused pane id (empty registry case).
func (r *Registry) ClearFocused() {
	r.focused = nil
}

// MinWidth returns id's declared minimum width, defaulting to
// DefaultMinWidth.
func (r *Registry) MinWidth(id PaneID) uint {
	p, ok := r.panes[id]
	if !ok {
		return DefaultMinWidth
	}
	if w := p.MinWidth(); w > 0 {
		return w
	}
	return DefaultMinWidth
}

// MinHeight returns id's declared minimum height, defaulting to
// DefaultMinHeight.
func (r *Registry) MinHeight(id PaneID) uint {
	p, ok := r.panes[id]
	if !ok {
		return DefaultMinHeight
	}
	if h := p.MinHeight(); h > 0 {
		return h
	}
	return DefaultMinHeight
}

// Selectable reports whether id's pane may receive focus.
func (r *Registry) Selectable(id PaneID) bool {
	p, ok := r.panes[id]
	return ok && p.Selectable()
}

// NextActivePane returns the last selectable, non-hidden pane in seq,
// breaking ties among equally-recent activations by ascending id. It is
// used to pick a successor when the focused pane closes: seq is the
// absorbing set in closure order, and the "last" one (by activation
// timestamp, ties by id) becomes focused.
func (r *Registry) NextActivePane(seq []PaneID) (PaneID, bool) {
	type candidate struct {
		id       PaneID
		activeAt int64
	}
	var candidates []candidate
	for _, id := range seq {
		p, ok := r.panes[id]
		if !ok || !p.Selectable() || r.IsHidden(id) {
			continue
		}
		candidates = append(candidates, candidate{id: id, activeAt: p.ActivatedAt()})
	}
	if len(candidates) == 0 {
		return PaneID{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].activeAt != candidates[j].activeAt {
			return candidates[i].activeAt > candidates[j].activeAt
		}
		return idLess(candidates[i].id, candidates[j].id)
	})
	return candidates[0].id, true
}

func idLess(a, b PaneID) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Num < b.Num
}
