package render

import (
	"image/color"

	"github.com/goccy/go-json"
	"github.com/lucasb-eyer/go-colorful"

	"geopan/internal/affine"
)

// DrawCommand is one recorded call on a Recorder.
type DrawCommand struct {
	Op string `json:"op"`
	// Args holds the numeric call arguments (points, translations, matrices).
	Args []float64 `json:"args,omitempty"`
	Text string    `json:"text,omitempty"`
	// Color is set for fillStyle ops, #rrggbb.
	Color string `json:"color,omitempty"`
	Font  string `json:"font,omitempty"`
	// CTM is the transformation matrix in force when the command ran.
	CTM affine.Flat `json:"ctm"`
}

// Recorder is a Surface that draws nothing and logs every call in order.
// Pipelines render into it for tests and for draw-command dumps.
type Recorder struct {
	StateStack
	width, height int
	Commands      []DrawCommand
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{StateStack: NewStateStack(), width: width, height: height}
}

func (r *Recorder) emit(cmd DrawCommand) {
	cmd.CTM = r.Current().CTM
	r.Commands = append(r.Commands, cmd)
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) Clear() { r.emit(DrawCommand{Op: "clear"}) }

func (r *Recorder) Save() {
	r.StateStack.Save()
	r.emit(DrawCommand{Op: "save"})
}

func (r *Recorder) Restore() {
	r.StateStack.Restore()
	r.emit(DrawCommand{Op: "restore"})
}

func (r *Recorder) Transform(m affine.Flat) {
	r.StateStack.Transform(m)
	r.emit(DrawCommand{Op: "transform", Args: m[:]})
}

func (r *Recorder) Translate(tx, ty float64) {
	r.StateStack.Translate(tx, ty)
	r.emit(DrawCommand{Op: "translate", Args: []float64{tx, ty}})
}

func (r *Recorder) BeginPath()          { r.emit(DrawCommand{Op: "beginPath"}) }
func (r *Recorder) MoveTo(x, y float64) { r.emit(DrawCommand{Op: "moveTo", Args: []float64{x, y}}) }
func (r *Recorder) LineTo(x, y float64) { r.emit(DrawCommand{Op: "lineTo", Args: []float64{x, y}}) }
func (r *Recorder) ClosePath()          { r.emit(DrawCommand{Op: "closePath"}) }
func (r *Recorder) Stroke()             { r.emit(DrawCommand{Op: "stroke"}) }
func (r *Recorder) Fill()               { r.emit(DrawCommand{Op: "fill"}) }

func (r *Recorder) SetFillColor(c color.Color) {
	r.StateStack.SetFillColor(c)
	r.emit(DrawCommand{Op: "fillStyle", Color: hexOf(c)})
}

func (r *Recorder) SetFont(f FontOption) {
	r.StateStack.SetFont(f)
	r.emit(DrawCommand{Op: "font", Font: f.String()})
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.emit(DrawCommand{Op: "fillText", Text: text, Args: []float64{x, y}})
}

// Ops lists the op names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		ops[i] = c.Op
	}
	return ops
}

// Reset drops recorded commands and drawing state.
func (r *Recorder) Reset() {
	r.StateStack.Reset()
	r.Commands = nil
}

// MarshalJSON encodes the command log.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Commands)
}

func hexOf(c color.Color) string {
	if c == nil {
		return ""
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
