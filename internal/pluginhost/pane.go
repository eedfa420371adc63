package pluginhost

import "github.com/1broseidon/tilegrid/internal/geometry"

// pluginPane backs every pane this server creates via split_pane. A
// plugin client drives structure only (split, close, move_focus, resize,
// stack), never pane content, so there is nothing here beyond the
// geometry bookkeeping paneregistry.Pane requires.
type pluginPane struct {
	geom        geometry.PaneGeom
	activatedAt int64
	override    *geometry.PaneGeom
}

func newPluginPane(activatedAt int64) *pluginPane {
	return &pluginPane{activatedAt: activatedAt}
}

func (p *pluginPane) Geom() geometry.PaneGeom     { return p.geom }
func (p *pluginPane) SetGeom(g geometry.PaneGeom) { p.geom = g }
func (p *pluginPane) MinWidth() uint              { return 5 }
func (p *pluginPane) MinHeight() uint             { return 5 }
func (p *pluginPane) Selectable() bool            { return true }
func (p *pluginPane) ActivatedAt() int64          { return p.activatedAt }
func (p *pluginPane) GeomOverride() (geometry.PaneGeom, bool) {
	if p.override == nil {
		return geometry.PaneGeom{}, false
	}
	return *p.override, true
}
func (p *pluginPane) SetGeomOverride(g geometry.PaneGeom, set bool) {
	if !set {
		p.override = nil
		return
	}
	p.override = &g
}
