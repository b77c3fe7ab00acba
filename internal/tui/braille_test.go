package tui

import (
	"image/color"
	"strings"
	"testing"

	"geopan/internal/affine"
	"geopan/internal/render"
)

func TestSetPixelBits(t *testing.T) {
	tests := []struct {
		mx, my int
		want   uint8
	}{
		{0, 0, 0x01}, {0, 1, 0x02}, {0, 2, 0x04}, {0, 3, 0x40},
		{1, 0, 0x08}, {1, 1, 0x10}, {1, 2, 0x20}, {1, 3, 0x80},
	}
	for _, tt := range tests {
		b := newBrailleCanvas(1, 1)
		b.setPixel(tt.mx, tt.my)
		if b.mask[0][0] != tt.want {
			t.Errorf("setPixel(%d,%d) = %#x, want %#x", tt.mx, tt.my, b.mask[0][0], tt.want)
		}
	}
	b := newBrailleCanvas(1, 1)
	b.setPixel(-1, 0)
	b.setPixel(2, 0)
	b.setPixel(0, 4)
	if b.mask[0][0] != 0 {
		t.Errorf("out of range pixels set mask %#x", b.mask[0][0])
	}
}

func TestSizeIsInDots(t *testing.T) {
	w, h := newBrailleCanvas(10, 5).Size()
	if w != 20 || h != 20 {
		t.Errorf("Size() = (%d,%d), want (20,20)", w, h)
	}
}

func box(b *brailleCanvas, x0, y0, x1, y1 float64) {
	b.MoveTo(x0, y0)
	b.LineTo(x1, y0)
	b.LineTo(x1, y1)
	b.LineTo(x0, y1)
	b.ClosePath()
}

func TestStrokeFullRow(t *testing.T) {
	b := newBrailleCanvas(4, 1)
	b.BeginPath()
	b.MoveTo(0, 0)
	b.LineTo(7, 0)
	b.Stroke()
	// top dots of both columns in every cell
	if got := b.plainLines()[0]; got != strings.Repeat(string(rune(0x2809)), 4) {
		t.Errorf("stroke row = %q", got)
	}
	if _, fg, _ := b.cell(0, 0); fg != string(mapStrokeFg) {
		t.Errorf("stroke colour = %q, want %q", fg, mapStrokeFg)
	}
}

func TestStrokeClipsFarSegments(t *testing.T) {
	b := newBrailleCanvas(4, 2)
	b.BeginPath()
	b.MoveTo(-1e7, 3)
	b.LineTo(1e7, 3)
	b.Stroke()
	for x := 0; x < 4; x++ {
		if b.mask[0][x] == 0 {
			t.Fatalf("cell %d not stroked", x)
		}
	}
}

func TestFillKeepsHoles(t *testing.T) {
	b := newBrailleCanvas(10, 5) // 20 x 20 dots
	b.SetFillColor(color.RGBA{R: 0xff, A: 0xff})
	b.BeginPath()
	box(b, 0, 0, 20, 20)
	box(b, 8, 8, 12, 12)
	b.Fill()
	if b.bg[0][0] != "#ff0000" {
		t.Errorf("corner cell bg = %q, want red", b.bg[0][0])
	}
	// dots 8..12 x 8..12 are cells x 4..5, y 2
	if b.bg[2][4] != "" || b.bg[2][5] != "" {
		t.Errorf("hole filled: %q %q", b.bg[2][4], b.bg[2][5])
	}
}

func TestFillTextWideRunes(t *testing.T) {
	b := newBrailleCanvas(8, 2)
	b.SetFillColor(color.White)
	b.Translate(2, 4)
	b.FillText("广东x", 0, 0)
	got := b.plainLines()[1]
	if !strings.HasPrefix(got, " 广东x") {
		t.Errorf("label row = %q", got)
	}
	if w := len([]rune(got)); w != 6 {
		t.Errorf("row has %d runes, want 6 (wide runes take two cells)", w)
	}
}

func TestFillTextClipsAtEdge(t *testing.T) {
	b := newBrailleCanvas(3, 1)
	b.FillText("abcdef", 2, 0)
	if got := b.plainLines()[0]; got != " ab" {
		t.Errorf("row = %q, want %q", got, " ab")
	}
}

func TestPipelineOnBraille(t *testing.T) {
	b := newBrailleCanvas(20, 10)
	p := render.NewPipeline(b, affine.NewComposer(), &render.CyclePalette{Colors: []color.Color{color.RGBA{G: 0xff, A: 0xff}}})
	if err := p.Render(squareRegion(), render.ViewOption{Font: render.FontOption{Size: 4, Color: "white"}}, affine.Identity()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if b.bg[5][5] != "#00ff00" {
		t.Errorf("interior bg = %q", b.bg[5][5])
	}
	if !strings.Contains(strings.Join(b.plainLines(), "\n"), "sq") {
		t.Error("label missing")
	}
	if b.View() == "" {
		t.Error("View() empty")
	}
}
