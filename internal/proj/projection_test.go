package proj

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"

	"geopan/internal/geom"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestProjectCornersFlipVertical(t *testing.T) {
	b := geom.GeoBounds{MinLon: 73.5, MaxLon: 135.1, MinLat: 18.2, MaxLat: 53.6}
	p, err := New(b, 1280, 960)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tests := []struct {
		name   string
		in     orb.Point
		wx, wy float64
	}{
		{"top left", orb.Point{b.MinLon, b.MaxLat}, 0, 0},
		{"top right", orb.Point{b.MaxLon, b.MaxLat}, 1280, 0},
		{"bottom left", orb.Point{b.MinLon, b.MinLat}, 0, 960},
		{"bottom right", orb.Point{b.MaxLon, b.MinLat}, 1280, 960},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := p.Project(tt.in)
			if !near(x, tt.wx) || !near(y, tt.wy) {
				t.Errorf("Project(%v) = (%v,%v), want (%v,%v)", tt.in, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestProjectMidpoint(t *testing.T) {
	p, err := New(geom.GeoBounds{MinLon: 100, MaxLon: 101, MinLat: 30, MaxLat: 31}, 800, 600)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	x, y := p.Project(orb.Point{100.5, 30.5})
	if !near(x, 400) || !near(y, 300) {
		t.Errorf("Project(100.5,30.5) = (%v,%v), want (400,300)", x, y)
	}
	s := p.Scale()
	if !near(s.ScaleX, 3600.0/800) || !near(s.ScaleY, 3600.0/600) {
		t.Errorf("Scale() = %+v", s)
	}
}

func TestUnprojectInvertsProject(t *testing.T) {
	p, _ := New(geom.GeoBounds{MinLon: -10, MaxLon: 30, MinLat: 35, MaxLat: 60}, 640, 480)
	for _, c := range []orb.Point{{0, 50}, {-10, 60}, {29.99, 35.01}, {12.345, 47.89}} {
		got := p.Unproject(p.Project(c))
		if !near(got[0], c[0]) || !near(got[1], c[1]) {
			t.Errorf("Unproject(Project(%v)) = %v", c, got)
		}
	}
}

func TestNewRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		b    geom.GeoBounds
		w, h int
	}{
		{"zero longitude extent", geom.GeoBounds{MinLon: 100, MaxLon: 100, MinLat: 30, MaxLat: 31}, 800, 600},
		{"zero latitude extent", geom.GeoBounds{MinLon: 100, MaxLon: 101, MinLat: 30, MaxLat: 30}, 800, 600},
		{"single point", geom.GeoBounds{MinLon: 1, MaxLon: 1, MinLat: 2, MaxLat: 2}, 800, 600},
		{"zero width raster", geom.GeoBounds{MinLon: 0, MaxLon: 1, MinLat: 0, MaxLat: 1}, 0, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.b, tt.w, tt.h)
			var dErr *DegenerateBoundsError
			if !errors.As(err, &dErr) {
				t.Fatalf("New() error = %v, want *DegenerateBoundsError", err)
			}
		})
	}
}
