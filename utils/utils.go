// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides seeded star scatters for tests and examples.
package utils

import (
	"math"
	"math/rand"

	"github.com/2dChan/galaxygen/stargen"
	"github.com/golang/geo/r2"
)

// ScatterStars generates cnt stars uniformly distributed on a disc of the
// given radius, with sequential ids starting at 1. The seed parameter
// ensures reproducibility.
func ScatterStars(cnt int, radius float64, seed int64) []stargen.Star {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	stars := make([]stargen.Star, cnt)

	for i := range cnt {
		r := radius * math.Sqrt(random.Float64())
		theta := random.Float64() * 2 * math.Pi
		density := random.Float64()
		stars[i] = stargen.Star{
			ID:            stargen.StarID(i + 1),
			Pos:           r2.Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)},
			Size:          2 + 7*density*density,
			Density:       density,
			Sprite:        "star-soft",
			RotationSpeed: 0.02 + 0.38*density,
		}
	}

	return stars
}
