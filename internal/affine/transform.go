// Package affine holds the 2D affine transforms used to place the map on a
// raster surface and the cumulative transform built up by pan and zoom.
package affine

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MalformedTransformError is returned when raw matrix data is not 4x4.
type MalformedTransformError struct {
	Rows int
	Cols int
}

func (e *MalformedTransformError) Error() string {
	return fmt.Sprintf("malformed transform: want 4x4 matrix, got %dx%d", e.Rows, e.Cols)
}

// Transform is a homogeneous 2D affine transform stored as a 4x4 matrix.
//
// Points are row vectors: p' = p x M, so translation lives in row 3.
// Layout (row-major):
//
//	| a  b  0  0 |
//	| c  d  0  0 |
//	| 0  0  1  0 |
//	| e  f  0  1 |
//
// The flat canvas form [a,b,c,d,e,f] is read from row-major indices
// 0,1,4,5,12,13 by Flat and is never stored separately.
type Transform struct {
	m mgl64.Mat4
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// Translate returns a pure translation by (tx, ty).
func Translate(tx, ty float64) Transform {
	return Transform{m: mgl64.Mat4FromRows(
		mgl64.Vec4{1, 0, 0, 0},
		mgl64.Vec4{0, 1, 0, 0},
		mgl64.Vec4{0, 0, 1, 0},
		mgl64.Vec4{tx, ty, 0, 1},
	)}
}

// ScaleAbout returns a uniform scale by z that leaves (fx, fy) in place:
// scale by z, then translate by (fx, fy)*(1-z).
func ScaleAbout(z, fx, fy float64) Transform {
	return Transform{m: mgl64.Mat4FromRows(
		mgl64.Vec4{z, 0, 0, 0},
		mgl64.Vec4{0, z, 0, 0},
		mgl64.Vec4{0, 0, 1, 0},
		mgl64.Vec4{fx * (1 - z), fy * (1 - z), 0, 1},
	)}
}

// FromRows builds a transform from row-major matrix data.
func FromRows(rows [][]float64) (Transform, error) {
	if len(rows) != 4 {
		cols := 0
		if len(rows) > 0 {
			cols = len(rows[0])
		}
		return Transform{}, &MalformedTransformError{Rows: len(rows), Cols: cols}
	}
	var vs [4]mgl64.Vec4
	for i, r := range rows {
		if len(r) != 4 {
			return Transform{}, &MalformedTransformError{Rows: len(rows), Cols: len(r)}
		}
		vs[i] = mgl64.Vec4{r[0], r[1], r[2], r[3]}
	}
	return Transform{m: mgl64.Mat4FromRows(vs[0], vs[1], vs[2], vs[3])}, nil
}

// Rows returns the matrix in row-major form.
func (t Transform) Rows() [][]float64 {
	out := make([][]float64, 4)
	for i := range out {
		r := t.m.Row(i)
		out[i] = []float64{r[0], r[1], r[2], r[3]}
	}
	return out
}

// At returns the entry at row r, column c.
func (t Transform) At(r, c int) float64 {
	return t.m.At(r, c)
}

// Mul returns t x other. Applied to a point, t acts first and other second.
func (t Transform) Mul(other Transform) Transform {
	return Transform{m: t.m.Mul4(other.m)}
}

// Inverse returns the matrix inverse. A singular matrix yields the zero
// matrix, which mgl64 reports as its inverse.
func (t Transform) Inverse() Transform {
	return Transform{m: t.m.Inv()}
}

// Det returns the determinant of the full 4x4 matrix.
func (t Transform) Det() float64 {
	return t.m.Det()
}

// Flat returns the canvas form [a,b,c,d,e,f].
func (t Transform) Flat() Flat {
	return Flat{
		t.m.At(0, 0), t.m.At(0, 1),
		t.m.At(1, 0), t.m.At(1, 1),
		t.m.At(3, 0), t.m.At(3, 1),
	}
}

// Apply maps the point (x, y).
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.Flat().Apply(x, y)
}

// ApproxEqual compares every entry within eps.
func (t Transform) ApproxEqual(other Transform, eps float64) bool {
	return t.m.ApproxEqualThreshold(other.m, eps)
}

// IsTranslation reports whether t has no scale, shear or rotation component.
func (t Transform) IsTranslation(eps float64) bool {
	f := t.Flat()
	return math.Abs(f[0]-1) < eps && math.Abs(f[1]) < eps &&
		math.Abs(f[2]) < eps && math.Abs(f[3]-1) < eps
}
