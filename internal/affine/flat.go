package affine

import "math"

// Flat is the six-element canvas form of an affine transform:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// Drawing surfaces use it to track their current transformation matrix.
type Flat [6]float64

// FlatIdentity returns [1,0,0,1,0,0].
func FlatIdentity() Flat {
	return Flat{1, 0, 0, 1, 0, 0}
}

// Multiply returns m * other: other is applied first, then m. This is what
// a canvas does when a transform is applied on top of the current one.
func (m Flat) Multiply(other Flat) Flat {
	return Flat{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Translate returns m with a translation by (tx, ty) applied first.
func (m Flat) Translate(tx, ty float64) Flat {
	return m.Multiply(Flat{1, 0, 0, 1, tx, ty})
}

// Apply maps the point (x, y).
func (m Flat) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Determinant of the linear part.
func (m Flat) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse, or false when m is singular.
func (m Flat) Invert() (Flat, bool) {
	det := m.Determinant()
	if det == 0 {
		return FlatIdentity(), false
	}
	inv := 1.0 / det
	return Flat{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}, true
}

// ScaleFactor is the geometric mean of the axis scales, used to size text.
func (m Flat) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// IsIdentity checks m against [1,0,0,1,0,0] within eps.
func (m Flat) IsIdentity(eps float64) bool {
	id := FlatIdentity()
	for i := range m {
		if math.Abs(m[i]-id[i]) > eps {
			return false
		}
	}
	return true
}
