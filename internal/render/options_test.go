package render

import (
	"image/color"
	"testing"
)

func TestViewOptionMerge(t *testing.T) {
	tests := []struct {
		name string
		in   ViewOption
		want FontOption
	}{
		{"zero inherits defaults", ViewOption{}, FontOption{24, "bold", "serif", "black"}},
		{"colour only", ViewOption{Font: FontOption{Color: "white"}}, FontOption{24, "bold", "serif", "white"}},
		{"all set", ViewOption{Font: FontOption{12, "normal", "mono", "#ff0000"}}, FontOption{12, "normal", "mono", "#ff0000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Merge()
			if err != nil {
				t.Fatalf("Merge() error = %v", err)
			}
			if got.Font != tt.want {
				t.Errorf("Merge() = %+v, want %+v", got.Font, tt.want)
			}
		})
	}
	if DefaultViewOption().Font.String() != "bold 24px serif" {
		t.Errorf("font shorthand = %q", DefaultViewOption().Font.String())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"white", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{" Black ", color.RGBA{0, 0, 0, 0xff}, false},
		{"#00ff00", color.RGBA{0, 0xff, 0, 0xff}, false},
		{"chartreuse-ish", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			r, g, b, a := c.RGBA()
			got := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStateStackUnbalancedRestore(t *testing.T) {
	s := NewStateStack()
	s.Translate(5, 5)
	s.Restore()
	if s.Current().CTM[4] != 5 {
		t.Error("unbalanced Restore() changed state")
	}
	s.Save()
	s.Translate(1, 1)
	s.Restore()
	if s.Current().CTM[4] != 5 || s.Depth() != 0 {
		t.Errorf("Restore() = %v depth %d", s.Current().CTM, s.Depth())
	}
}

func TestWarmPaletteCycles(t *testing.T) {
	p := WarmPalette(3)
	first := p.Next()
	p.Next()
	p.Next()
	if p.Next() != first {
		t.Error("palette did not cycle")
	}
	p.Rewind()
	if p.Next() != first {
		t.Error("Rewind() did not restart")
	}
}
