package main

import "github.com/1broseidon/tilegrid/internal/geometry"

// blankPane is a content-less pane used to seed a grid for the view and
// layout subcommands: tilegrid has no terminal/PTY backend of its own,
// only the geometry engine, so these commands only ever need a pane's
// placement, never anything it would render.
type blankPane struct {
	geom        geometry.PaneGeom
	activatedAt int64
	override    *geometry.PaneGeom
}

func (p *blankPane) Geom() geometry.PaneGeom     { return p.geom }
func (p *blankPane) SetGeom(g geometry.PaneGeom) { p.geom = g }
func (p *blankPane) MinWidth() uint              { return 5 }
func (p *blankPane) MinHeight() uint             { return 5 }
func (p *blankPane) Selectable() bool            { return true }
func (p *blankPane) ActivatedAt() int64          { return p.activatedAt }
func (p *blankPane) GeomOverride() (geometry.PaneGeom, bool) {
	if p.override == nil {
		return geometry.PaneGeom{}, false
	}
	return *p.override, true
}
func (p *blankPane) SetGeomOverride(g geometry.PaneGeom, set bool) {
	if !set {
		p.override = nil
		return
	}
	p.override = &g
}
