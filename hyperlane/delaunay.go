// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package hyperlane

import (
	"errors"
	"fmt"

	"github.com/2dChan/galaxygen/stargen"
	"github.com/fogleman/delaunay"
)

// triangulationEdges returns the undirected Delaunay edge set over the
// star positions as index pairs into stars. The triangulation library
// indexes its output triangles by input position, so every endpoint maps
// back to its star exactly, with no coordinate matching involved.
//
// Sets of fewer than 4 stars sit below the general path and are connected
// directly: 0 or 1 stars yield no edges, 2 stars a single edge, 3 stars a
// triangle.
func triangulationEdges(stars []stargen.Star) ([][2]int, error) {
	switch len(stars) {
	case 0, 1:
		return nil, nil
	case 2:
		return [][2]int{{0, 1}}, nil
	case 3:
		return [][2]int{{0, 1}, {1, 2}, {0, 2}}, nil
	}

	points := make([]delaunay.Point, len(stars))
	for i, s := range stars {
		points[i] = delaunay.Point{X: s.Pos.X, Y: s.Pos.Y}
	}
	t, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, fmt.Errorf("hyperlane: triangulation failed: %w", err)
	}
	if len(t.Triangles)%3 != 0 {
		return nil, errors.New("hyperlane: inconsistent triangle list returned from triangulation")
	}

	// Each undirected edge appears as two halfedges (one for hull edges,
	// whose twin is -1). Keeping only e > twin(e) emits each edge once.
	edges := make([][2]int, 0, len(t.Triangles))
	for e := range t.Triangles {
		if e <= t.Halfedges[e] {
			continue
		}
		p := t.Triangles[e]
		q := t.Triangles[nextHalfedge(e)]
		if p < 0 || p >= len(stars) || q < 0 || q >= len(stars) {
			return nil, fmt.Errorf("%w: triangulation returned vertex index out of range: %d-%d", ErrInvariant, p, q)
		}
		edges = append(edges, [2]int{p, q})
	}
	return edges, nil
}

// nextHalfedge steps to the next halfedge within the same triangle.
func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}
