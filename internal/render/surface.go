// Package render draws a geographic collection onto a 2D drawing surface
// under the cumulative pan/zoom transform.
package render

import (
	"image/color"

	"geopan/internal/affine"
)

// Surface is a canvas-style 2D drawing context. Coordinates passed to path
// and text calls are mapped through the current transformation matrix, which
// Transform and Translate modify and Save/Restore push and pop.
type Surface interface {
	Size() (width, height int)
	// Clear resets every pixel of the surface, ignoring the current transform.
	Clear()
	Save()
	Restore()
	// Transform multiplies m onto the current transformation matrix.
	Transform(m affine.Flat)
	Translate(tx, ty float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Stroke()
	Fill()

	SetFillColor(c color.Color)
	SetFont(f FontOption)
	FillText(text string, x, y float64)
}
