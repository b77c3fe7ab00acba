package tui

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"geopan/internal/render"
)

// brailleCanvas is a render.Surface on a grid of terminal cells. Each cell
// holds 2x4 braille dots, so the drawing space is (2*w) x (4*h) dots.
// Strokes set dots, fills colour cell backgrounds, and text overlays cells.
type brailleCanvas struct {
	render.StateStack

	w, h int // in cells
	mask [][]uint8
	bg   [][]string // cell background hex, "" for none
	text [][]label

	strokeHex string

	subpaths [][]dot
	closed   []bool
}

type dot struct{ x, y float64 }

// label is one overlay cell. cont marks the right half of a wide rune.
type label struct {
	r    rune
	hex  string
	cont bool
}

func newBrailleCanvas(w, h int) *brailleCanvas {
	b := &brailleCanvas{
		StateStack: render.NewStateStack(),
		w:          max(w, 1),
		h:          max(h, 1),
		strokeHex:  string(mapStrokeFg),
	}
	b.Clear()
	return b
}

func (b *brailleCanvas) Size() (int, int) { return b.w * 2, b.h * 4 }

func (b *brailleCanvas) Clear() {
	b.mask = make([][]uint8, b.h)
	b.bg = make([][]string, b.h)
	b.text = make([][]label, b.h)
	for i := 0; i < b.h; i++ {
		b.mask[i] = make([]uint8, b.w)
		b.bg[i] = make([]string, b.w)
		b.text[i] = make([]label, b.w)
	}
}

// setPixel sets a dot at micro coords (2x4 per cell)
func (b *brailleCanvas) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.mask[cy][cx] |= bit
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleCanvas) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// segment clips a-c to the dot grid (Liang-Barsky) before walking it, so
// zoomed-in outlines far off screen cost nothing.
func (b *brailleCanvas) segment(a, c dot) {
	minX, minY := -1.0, -1.0
	maxX, maxY := float64(b.w*2), float64(b.h*4)
	dx, dy := c.x-a.x, c.y-a.y
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math.Min(t1, r)
		}
		return true
	}
	if !clip(-dx, a.x-minX) || !clip(dx, maxX-a.x) || !clip(-dy, a.y-minY) || !clip(dy, maxY-a.y) {
		return
	}
	b.drawLineMicro(
		iround(a.x+t0*dx), iround(a.y+t0*dy),
		iround(a.x+t1*dx), iround(a.y+t1*dy),
	)
}

func (b *brailleCanvas) BeginPath() {
	b.subpaths = b.subpaths[:0]
	b.closed = b.closed[:0]
}

func (b *brailleCanvas) MoveTo(x, y float64) {
	dx, dy := b.Current().CTM.Apply(x, y)
	b.subpaths = append(b.subpaths, []dot{{dx, dy}})
	b.closed = append(b.closed, false)
}

func (b *brailleCanvas) LineTo(x, y float64) {
	if len(b.subpaths) == 0 {
		b.MoveTo(x, y)
		return
	}
	dx, dy := b.Current().CTM.Apply(x, y)
	last := len(b.subpaths) - 1
	b.subpaths[last] = append(b.subpaths[last], dot{dx, dy})
}

func (b *brailleCanvas) ClosePath() {
	if len(b.closed) > 0 {
		b.closed[len(b.closed)-1] = true
	}
}

func (b *brailleCanvas) Stroke() {
	for i, sp := range b.subpaths {
		n := len(sp)
		if n == 0 {
			continue
		}
		for j := 1; j < n; j++ {
			b.segment(sp[j-1], sp[j])
		}
		if b.closed[i] && n > 1 {
			b.segment(sp[n-1], sp[0])
		}
	}
}

// Fill colours every cell at least half covered by the path, using the
// even-odd rule across all subpaths so holes stay open.
func (b *brailleCanvas) Fill() {
	hex := hexColor(b.Current().Fill)
	if hex == "" || len(b.subpaths) == 0 {
		return
	}
	cover := make([][]uint8, b.h)
	for i := range cover {
		cover[i] = make([]uint8, b.w)
	}
	wMic, hMic := b.w*2, b.h*4
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, sp := range b.subpaths {
		for _, d := range sp {
			top, bottom = math.Min(top, d.y), math.Max(bottom, d.y)
		}
	}
	y0 := max(0, int(math.Floor(top)))
	y1 := min(hMic, int(math.Ceil(bottom))+1)
	var xs []float64
	for yMic := y0; yMic < y1; yMic++ {
		yc := float64(yMic) + 0.5
		xs = xs[:0]
		for _, sp := range b.subpaths {
			for i := range sp {
				a, c := sp[i], sp[(i+1)%len(sp)]
				if a.y == c.y {
					continue
				}
				if (yc >= a.y && yc < c.y) || (yc >= c.y && yc < a.y) {
					t := (yc - a.y) / (c.y - a.y)
					xs = append(xs, a.x+t*(c.x-a.x))
				}
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := max(0, iround(xs[i]))
			x1 := min(wMic, iround(xs[i+1]))
			for xMic := x0; xMic < x1; xMic++ {
				cover[yMic/4][xMic/2]++
			}
		}
	}
	for y := range cover {
		for x, n := range cover[y] {
			if n >= 4 {
				b.bg[y][x] = hex
			}
		}
	}
}

// FillText writes text into the cell overlay starting at the cell that
// holds (x, y). Glyph size is fixed by the terminal.
func (b *brailleCanvas) FillText(s string, x, y float64) {
	st := b.Current()
	dx, dy := st.CTM.Apply(x, y)
	cx, cy := iround(dx)/2, iround(dy)/4
	if dy < 0 || cy >= b.h {
		return
	}
	hex := hexColor(st.Fill)
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if cx >= 0 && cx+rw <= b.w {
			b.text[cy][cx] = label{r: r, hex: hex}
			if rw == 2 {
				b.text[cy][cx+1] = label{cont: true}
			}
		}
		cx += rw
		if cx >= b.w {
			break
		}
	}
}

// cell returns the rune shown at (x, y) and its foreground colour.
func (b *brailleCanvas) cell(x, y int) (rune, string, bool) {
	if t := b.text[y][x]; t.cont {
		return 0, "", true
	} else if t.r != 0 {
		return t.r, t.hex, false
	}
	if m := b.mask[y][x]; m != 0 {
		return rune(0x2800 + int(m)), b.strokeHex, false
	}
	return ' ', "", false
}

// plainLines renders the grid without colour.
func (b *brailleCanvas) plainLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		for x := 0; x < b.w; x++ {
			r, _, cont := b.cell(x, y)
			if !cont {
				sb.WriteRune(r)
			}
		}
		out[y] = sb.String()
	}
	return out
}

// View renders the grid with lipgloss, one style per run of equal colours.
func (b *brailleCanvas) View() string {
	lines := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb, run strings.Builder
		curFg, curBg := "", ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle()
			if curFg != "" {
				st = st.Foreground(lipgloss.Color(curFg))
			}
			if curBg != "" {
				st = st.Background(lipgloss.Color(curBg))
			}
			sb.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < b.w; x++ {
			r, fg, cont := b.cell(x, y)
			if cont {
				continue
			}
			bg := b.bg[y][x]
			if fg != curFg || bg != curBg {
				flush()
				curFg, curBg = fg, bg
			}
			run.WriteRune(r)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func hexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cf.Hex()
}

func iround(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ render.Surface = (*brailleCanvas)(nil)
