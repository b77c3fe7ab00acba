package render

import (
	"image/color"

	"geopan/internal/affine"
)

// State is the save/restore-able part of a drawing context.
type State struct {
	CTM  affine.Flat
	Fill color.Color
	Font FontOption
}

// StateStack tracks the current drawing state and the saved ones. Surfaces
// embed it to get canvas Save/Restore semantics.
type StateStack struct {
	cur   State
	saved []State
}

func NewStateStack() StateStack {
	return StateStack{cur: State{
		CTM:  affine.FlatIdentity(),
		Fill: color.Black,
		Font: DefaultViewOption().Font,
	}}
}

func (s *StateStack) Current() State { return s.cur }

func (s *StateStack) Save() {
	s.saved = append(s.saved, s.cur)
}

// Restore pops the last saved state. An unbalanced Restore is a no-op.
func (s *StateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *StateStack) Depth() int { return len(s.saved) }

func (s *StateStack) Transform(m affine.Flat) {
	s.cur.CTM = s.cur.CTM.Multiply(m)
}

func (s *StateStack) Translate(tx, ty float64) {
	s.cur.CTM = s.cur.CTM.Translate(tx, ty)
}

func (s *StateStack) SetFillColor(c color.Color) { s.cur.Fill = c }
func (s *StateStack) SetFont(f FontOption)       { s.cur.Font = f }

// Reset drops all saved states and returns to the defaults.
func (s *StateStack) Reset() {
	*s = NewStateStack()
}
