// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"errors"
	"math"
	"testing"

	"github.com/2dChan/galaxygen/stargen"
	"github.com/2dChan/galaxygen/utils"
	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	fortune "github.com/pzsz/voronoi"
)

func TestWithPadding(t *testing.T) {
	tests := []struct {
		name        string
		minPadding  float64
		expandScale float64
		wantErr     bool
	}{
		{"both positive", 20, 0.05, false},
		{"both zero", 0, 0, false},
		{"negative padding", -1, 0.1, true},
		{"negative scale", 10, -0.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &BuildOptions{}
			err := WithPadding(tt.minPadding, tt.expandScale)(opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithPadding(%v, %v) error = %v, wantErr %v", tt.minPadding, tt.expandScale, err, tt.wantErr)
			}
		})
	}
}

func TestBuild_DegenerateInput(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"single star", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(utils.ScatterStars(tt.size, 100, 0))
			if err != nil {
				t.Fatalf("Build(...) error = %v", err)
			}
			if len(p.Cells) != 0 {
				t.Errorf("Build(...) cell count = %v, want 0", len(p.Cells))
			}
		})
	}
}

func TestBuild_TwoStars(t *testing.T) {
	p, err := Build(utils.ScatterStars(2, 100, 0))
	if err != nil {
		t.Fatalf("Build(...) error = %v", err)
	}
	if len(p.Cells) > 2 {
		t.Errorf("Build(2 stars) cell count = %v, want at most 2", len(p.Cells))
	}
}

// Four stars on a square split the envelope into four quadrant cells,
// each with its centroid closer to the owning star than to any other.
func TestBuild_Square(t *testing.T) {
	stars := squareStars()
	p, err := Build(stars)
	if err != nil {
		t.Fatalf("Build(...) error = %v", err)
	}
	if len(p.Cells) != 4 {
		t.Fatalf("Build(square) cell count = %v, want 4", len(p.Cells))
	}

	for _, star := range stars {
		cell, ok := p.CellOf(star.ID)
		if !ok {
			t.Fatalf("star %v has no cell", star.ID)
		}
		ownD := cell.Centroid.Sub(star.Pos).Norm()
		for _, other := range stars {
			if other.ID == star.ID {
				continue
			}
			if d := cell.Centroid.Sub(other.Pos).Norm(); d <= ownD {
				t.Errorf("cell of star %v: centroid closer to star %v (%v <= %v)", star.ID, other.ID, d, ownD)
			}
		}
	}
}

func TestBuild_CellInvariants(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"small", 10},
		{"medium", 150},
		{"large", 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stars := utils.ScatterStars(tt.size, 1000, 9)
			p, err := Build(stars)
			if err != nil {
				t.Fatalf("Build(...) error = %v", err)
			}

			known := make(map[stargen.StarID]r2.Point, len(stars))
			for _, s := range stars {
				known[s.ID] = s.Pos
			}

			// Clip intersections can land on the envelope border up to
			// float rounding.
			clipBounds := p.Envelope.ExpandedByMargin(1e-6)

			envelopeCells := 0
			for id, cell := range p.Cells {
				if _, ok := known[id]; !ok {
					t.Errorf("cell owned by unknown star %v", id)
				}
				if cell.Star != id {
					t.Errorf("cell key %v does not match owner %v", id, cell.Star)
				}
				if cell.OnEnvelope {
					envelopeCells++
				}

				for _, v := range cell.Vertices {
					if !clipBounds.ContainsPoint(v) {
						t.Errorf("cell %v vertex %v outside envelope %v", id, v, p.Envelope)
					}
					if !cell.BBox.ContainsPoint(v) {
						t.Errorf("cell %v vertex %v outside bbox %v", id, v, cell.BBox)
					}
				}

				if len(cell.Vertices) >= 3 {
					if area := signedArea(cell.Vertices); area <= 0 {
						t.Errorf("cell %v not counter-clockwise: signed area %v", id, area)
					}
					if !cell.BBox.ContainsPoint(cell.Centroid) {
						t.Errorf("cell %v centroid %v outside bbox %v", id, cell.Centroid, cell.BBox)
					}
				} else if cell.Centroid != known[id] {
					// Degenerate cells fall back to the site position.
					t.Errorf("degenerate cell %v centroid = %v, want site %v", id, cell.Centroid, known[id])
				}
			}
			if tt.size > 2 && envelopeCells == 0 {
				t.Errorf("no cell flagged OnEnvelope; border cells must touch the clip envelope")
			}
		})
	}
}

// The area centroid differs from the vertex mean for skewed polygons; the
// cached centroid must be the area-weighted one.
func TestBuild_AreaCentroid(t *testing.T) {
	// A right triangle with vertices (0,0), (9,0), (0,9): area centroid
	// is at (3,3) regardless of how clipping subdivides the hypotenuse.
	ring := []r2.Point{{X: 0, Y: 0}, {X: 9, Y: 0}, {X: 0, Y: 9}}
	c := polygonCentroid(ring, r2.Point{})
	if math.Abs(c.X-3) > 1e-12 || math.Abs(c.Y-3) > 1e-12 {
		t.Errorf("polygonCentroid(right triangle) = %v, want (3, 3)", c)
	}
}

func TestBuild_Determinism(t *testing.T) {
	stars := utils.ScatterStars(200, 700, 21)

	a, err := Build(stars)
	if err != nil {
		t.Fatalf("Build(...) error = %v", err)
	}
	b, err := Build(stars)
	if err != nil {
		t.Fatalf("Build(...) error = %v", err)
	}
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("Build(...) mismatch between identical runs (-want +got):\n%v", diff)
	}
}

func TestBuild_CoincidentStars(t *testing.T) {
	stars := utils.ScatterStars(10, 100, 0)
	stars[4].Pos = stars[8].Pos

	_, err := Build(stars)
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("Build(coincident stars) error = %v, want ErrInvariant", err)
	}
}

func TestNearestResolver_Ambiguity(t *testing.T) {
	stars := []stargen.Star{
		{ID: 1, Pos: r2.Point{X: -10, Y: 0}},
		{ID: 2, Pos: r2.Point{X: 10, Y: 0}},
	}
	r := &nearestResolver{stars: stars}

	if _, err := r.owner(fortune.Vertex{X: 0, Y: 5}); !errors.Is(err, ErrInvariant) {
		t.Errorf("owner(equidistant site) error = %v, want ErrInvariant", err)
	}

	idx, err := r.owner(fortune.Vertex{X: 9, Y: 1})
	if err != nil {
		t.Fatalf("owner(...) error = %v", err)
	}
	if idx != 1 {
		t.Errorf("owner(...) = %v, want 1", idx)
	}
}

func squareStars() []stargen.Star {
	coords := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	stars := make([]stargen.Star, len(coords))
	for i, p := range coords {
		stars[i] = stargen.Star{ID: stargen.StarID(i + 1), Pos: p, Density: 0.5, Size: 3, Sprite: "s"}
	}
	return stars
}
