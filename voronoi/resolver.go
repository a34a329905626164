// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"fmt"

	"github.com/2dChan/galaxygen/stargen"
	fortune "github.com/pzsz/voronoi"
)

// siteResolver recovers the index of the star that owns a diagram cell.
// Two strategies exist: exact lookup on the preserved site vertex, and a
// full nearest-site scan. The exact strategy applies when the diagram
// library carries input coordinates through bit-for-bit; the scan is the
// general fallback and is deliberately not epsilon-thresholded, since a
// cell's representative point need not coincide with its generating site.
type siteResolver interface {
	owner(site fortune.Vertex) (int, error)
}

// newSiteResolver picks the strategy for the Fortune diagram in use: it
// copies site vertices into cells verbatim, so exact lookup is tried
// first with the scan as a safety net.
func newSiteResolver(stars []stargen.Star) siteResolver {
	exact := make(map[fortune.Vertex]int, len(stars))
	for i, s := range stars {
		exact[fortune.Vertex{X: s.Pos.X, Y: s.Pos.Y}] = i
	}
	return &exactResolver{
		byVertex: exact,
		fallback: &nearestResolver{stars: stars},
	}
}

type exactResolver struct {
	byVertex map[fortune.Vertex]int
	fallback *nearestResolver
}

func (r *exactResolver) owner(site fortune.Vertex) (int, error) {
	if i, ok := r.byVertex[site]; ok {
		return i, nil
	}
	return r.fallback.owner(site)
}

// nearestResolver selects the star with minimum squared distance to the
// site. An exact distance tie between two distinct stars is ambiguous and
// reported as an invariant violation rather than silently resolved to the
// first candidate.
type nearestResolver struct {
	stars []stargen.Star
}

func (r *nearestResolver) owner(site fortune.Vertex) (int, error) {
	if len(r.stars) == 0 {
		return 0, fmt.Errorf("%w: no stars to resolve site (%v, %v) against", ErrInvariant, site.X, site.Y)
	}
	best := 0
	bestD2 := distSq(r.stars[0], site)
	tied := false
	for i, s := range r.stars[1:] {
		d2 := distSq(s, site)
		switch {
		case d2 < bestD2:
			best, bestD2 = i+1, d2
			tied = false
		case d2 == bestD2:
			tied = true
		}
	}
	if tied {
		return 0, fmt.Errorf("%w: site (%v, %v) is equidistant from multiple stars", ErrInvariant, site.X, site.Y)
	}
	return best, nil
}

func distSq(s stargen.Star, site fortune.Vertex) float64 {
	dx := s.Pos.X - site.X
	dy := s.Pos.Y - site.Y
	return dx*dx + dy*dy
}
