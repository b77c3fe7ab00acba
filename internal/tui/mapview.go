package tui

import (
	"github.com/paulmach/orb"

	"geopan/internal/affine"
	"geopan/internal/geom"
	"geopan/internal/interaction"
	"geopan/internal/logging"
	"geopan/internal/render"
)

// mapView owns the drawing state shared by every copy of Model. Update is
// its only writer.
type mapView struct {
	coll    geom.Collection
	index   *geom.Index
	opts    render.ViewOption
	palette *render.CyclePalette

	canvas   *brailleCanvas
	pipeline *render.Pipeline
	ctl      *interaction.Controller

	// origin and size of the map area in terminal cells
	x, y, w, h int
	lastErr    error
}

func newMapView(opts render.ViewOption) *mapView {
	v := &mapView{
		opts:    opts,
		palette: render.WarmPalette(12),
		canvas:  newBrailleCanvas(1, 1),
	}
	composer := affine.NewComposer()
	v.pipeline = render.NewPipeline(v.canvas, composer, v.palette)
	cw, ch := v.canvas.Size()
	v.ctl = interaction.New(composer, cw, ch, v.render)
	return v
}

// render is the controller's RenderFunc. Colours restart every frame so a
// region keeps its colour while the view moves.
func (v *mapView) render(req affine.Transform) error {
	if len(v.coll.Features) == 0 {
		return nil
	}
	v.palette.Rewind()
	err := v.pipeline.Render(v.coll, v.opts, req)
	v.lastErr = err
	if err != nil {
		// the canvas still holds the previous drawing; blank it
		v.canvas.Clear()
		v.pipeline.Invalidate()
		logging.Warn().Err(err).Str("region", v.coll.Name).Msg("render failed")
	}
	return err
}

// place moves and resizes the map area. A size change swaps in a fresh
// canvas and redraws; the pan/zoom transform carries over.
func (v *mapView) place(x, y, w, h int) error {
	v.x, v.y = x, y
	if w == v.w && h == v.h {
		return nil
	}
	v.w, v.h = w, h
	v.canvas = newBrailleCanvas(w, h)
	v.pipeline.SetSurface(v.canvas)
	cw, ch := v.canvas.Size()
	v.ctl.Resize(cw, ch)
	return v.ctl.Redraw()
}

// show switches to coll and resets the view onto it.
func (v *mapView) show(coll geom.Collection) error {
	v.coll = coll
	v.index = geom.NewIndex(coll)
	logging.Info().Str("region", coll.Name).Int("features", len(coll.Features)).Msg("showing region")
	return v.ctl.Reset()
}

// replace swaps the collection data in place, e.g. after a reload, keeping
// the current transform.
func (v *mapView) replace(coll geom.Collection) error {
	v.coll = coll
	v.index = geom.NewIndex(coll)
	return v.ctl.Redraw()
}

// dots converts a terminal cell position into dot coordinates relative to
// the map area, at the centre of the cell.
func (v *mapView) dots(cellX, cellY int) (float64, float64) {
	return float64((cellX-v.x)*2 + 1), float64((cellY-v.y)*4 + 2)
}

func (v *mapView) contains(cellX, cellY int) bool {
	return cellX >= v.x && cellY >= v.y && cellX < v.x+v.w && cellY < v.y+v.h
}

// locate maps a terminal cell to lon/lat and the feature beneath it.
func (v *mapView) locate(cellX, cellY int) (orb.Point, string, bool) {
	if !v.contains(cellX, cellY) {
		return orb.Point{}, "", false
	}
	p, ok := v.pipeline.Locate(v.dots(cellX, cellY))
	if !ok {
		return orb.Point{}, "", false
	}
	name := ""
	if v.index != nil {
		if f, hit := v.index.At(p); hit {
			name = f.Name
		}
	}
	return p, name, true
}

func (v *mapView) View() string { return v.canvas.View() }
