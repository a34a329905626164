// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package utils

import (
	"testing"

	"github.com/2dChan/galaxygen/stargen"
	"github.com/google/go-cmp/cmp"
)

func TestScatterStars_Length(t *testing.T) {
	tests := []struct {
		name string
		cnt  int
		seed int64
	}{
		{"zero stars", 0, 42},
		{"one star", 1, 42},
		{"ten stars", 10, 0},
		{"hundred stars", 100, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stars := ScatterStars(tt.cnt, 500, tt.seed)
			if len(stars) != tt.cnt {
				t.Errorf("ScatterStars(%v, 500, %v) len = %v, want %v", tt.cnt, tt.seed,
					len(stars), tt.cnt)
			}
		})
	}
}

func TestScatterStars_WithinRadius(t *testing.T) {
	const (
		cnt    = 100
		radius = 500.0
		seed   = 0
	)
	stars := ScatterStars(cnt, radius, seed)
	for i, s := range stars {
		if s.Pos.Norm() > radius {
			t.Errorf("ScatterStars(%v, %v, %v)[%d]: |pos| = %v, want <= %v", cnt, radius, seed,
				i, s.Pos.Norm(), radius)
		}
		if s.ID != stargen.StarID(i+1) {
			t.Errorf("ScatterStars(...)[%d]: id = %v, want %v", i, s.ID, i+1)
		}
	}
}

func TestScatterStars_Determinism(t *testing.T) {
	const (
		cnt  = 10
		seed = 0
	)
	a := ScatterStars(cnt, 500, seed)
	b := ScatterStars(cnt, 500, seed)
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("ScatterStars(%v, 500, %v) mismatch (-want +got):\n%v", cnt, seed, diff)
	}
}
