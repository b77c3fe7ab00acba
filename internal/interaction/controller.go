// Package interaction turns pointer, wheel and button input into transform
// requests for the render pipeline.
package interaction

import (
	"math"

	"geopan/internal/affine"
	"geopan/internal/logging"
)

const (
	// ZoomStep is added to or taken from the scale base per wheel notch.
	ZoomStep = 0.1
	// MinScale is the smallest cumulative zoom.
	MinScale = 0.1
	// ButtonDelta is the synthetic wheel delta of the zoom buttons.
	ButtonDelta = 100.0
)

type Point struct{ X, Y float64 }

// DragState is an in-progress drag; Last is nil when no drag is active.
type DragState struct {
	Active bool
	Last   *Point
}

// ViewState is everything the view keeps between events.
type ViewState struct {
	Composer  *affine.Composer
	ScaleBase float64
	Drag      DragState
}

type Cursor int

const (
	CursorGrab Cursor = iota
	CursorGrabbing
)

func (c Cursor) String() string {
	if c == CursorGrabbing {
		return "grabbing"
	}
	return "grab"
}

// WheelRequest is either a NativeWheel from the pointer device or a
// SyntheticWheel from the zoom buttons.
type WheelRequest interface {
	wheel()
}

// NativeWheel zooms about the pointer position.
type NativeWheel struct {
	X, Y   float64
	DeltaY float64
}

// SyntheticWheel zooms about the surface centre.
type SyntheticWheel struct {
	DeltaY float64
}

func (NativeWheel) wheel()    {}
func (SyntheticWheel) wheel() {}

// RenderFunc composes req into the cumulative transform and redraws.
type RenderFunc func(req affine.Transform) error

// Controller is the single writer of the view state. It is driven from one
// event loop and is not safe for concurrent use.
type Controller struct {
	state         ViewState
	width, height float64
	render        RenderFunc
	cursor        Cursor
}

// New returns a controller for a width x height surface whose transform
// lives in composer.
func New(composer *affine.Composer, width, height int, render RenderFunc) *Controller {
	return &Controller{
		state:  ViewState{Composer: composer, ScaleBase: 1},
		width:  float64(width),
		height: float64(height),
		render: render,
	}
}

// Resize updates the surface rectangle used for hit tests and the
// synthetic zoom centre.
func (c *Controller) Resize(width, height int) {
	c.width, c.height = float64(width), float64(height)
}

func (c *Controller) State() ViewState { return c.state }
func (c *Controller) Cursor() Cursor   { return c.cursor }
func (c *Controller) Dragging() bool   { return c.state.Drag.Active }

func (c *Controller) inside(x, y float64) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// PointerDown starts a drag at (x, y). Presses outside the surface or while
// a drag is already active are ignored.
func (c *Controller) PointerDown(x, y float64) {
	if !c.inside(x, y) || c.state.Drag.Active {
		return
	}
	c.state.Drag = DragState{Active: true, Last: &Point{x, y}}
	c.cursor = CursorGrabbing
}

// PointerMove pans by the offset from the last drag position. Every move
// during a drag renders, even a zero offset.
func (c *Controller) PointerMove(x, y float64) error {
	d := c.state.Drag
	if !d.Active || d.Last == nil {
		return nil
	}
	dx, dy := x-d.Last.X, y-d.Last.Y
	if err := c.render(affine.Translate(dx, dy)); err != nil {
		return err
	}
	c.state.Drag.Last = &Point{x, y}
	return nil
}

// PointerUp ends any drag.
func (c *Controller) PointerUp() {
	if !c.state.Drag.Active {
		return
	}
	c.state.Drag = DragState{}
	c.cursor = CursorGrab
}

// Wheel zooms one step: negative DeltaY zooms in, positive zooms out. The
// scale base never drops below MinScale.
func (c *Controller) Wheel(req WheelRequest) error {
	var delta, fx, fy float64
	switch r := req.(type) {
	case NativeWheel:
		if !c.inside(r.X, r.Y) {
			return nil
		}
		delta, fx, fy = r.DeltaY, r.X, r.Y
	case SyntheticWheel:
		delta, fx, fy = r.DeltaY, c.width/2, c.height/2
	default:
		return nil
	}
	if delta == 0 {
		return nil
	}

	base := c.state.ScaleBase
	curr := base + ZoomStep
	if delta > 0 {
		curr = base - ZoomStep
	}
	if curr <= 0 {
		curr = base
	}
	curr = math.Max(curr, MinScale)
	zoom := curr / base

	if err := c.render(affine.ScaleAbout(zoom, fx, fy)); err != nil {
		return err
	}
	c.state.ScaleBase = curr
	logging.Debug().Float64("scale", curr).Float64("zoom", zoom).Msg("zoom")
	return nil
}

func (c *Controller) ZoomIn() error {
	return c.Wheel(SyntheticWheel{DeltaY: -ButtonDelta})
}

func (c *Controller) ZoomOut() error {
	return c.Wheel(SyntheticWheel{DeltaY: ButtonDelta})
}

// Reset returns the view to identity by composing the inverse of the
// current transform.
func (c *Controller) Reset() error {
	if err := c.render(c.state.Composer.ResetRequest()); err != nil {
		return err
	}
	c.state.ScaleBase = 1
	logging.Debug().Msg("view reset")
	return nil
}

// Pan translates the view by (dx, dy) device pixels.
func (c *Controller) Pan(dx, dy float64) error {
	return c.render(affine.Translate(dx, dy))
}

// Redraw renders with an identity request, leaving the transform as is.
func (c *Controller) Redraw() error {
	return c.render(affine.Identity())
}
