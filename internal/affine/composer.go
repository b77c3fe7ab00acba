package affine

// Composer owns the cumulative view transform. It starts at identity and
// only changes through Compose; reset is a Compose with ResetRequest.
//
// Composer is not safe for concurrent use. The view has a single writer.
type Composer struct {
	current Transform
}

// NewComposer returns a composer holding the identity transform.
func NewComposer() *Composer {
	return &Composer{current: Identity()}
}

// Current returns the cumulative transform.
func (c *Composer) Current() Transform {
	return c.current
}

// Compose folds req into the cumulative transform (current x req), so req
// acts in the coordinate space the view already shows.
func (c *Composer) Compose(req Transform) Transform {
	c.current = c.current.Mul(req)
	return c.current
}

// ResetRequest returns the request that brings the cumulative transform
// back to identity when composed. The result is only as exact as the
// floating point inverse.
func (c *Composer) ResetRequest() Transform {
	return c.current.Inverse()
}
