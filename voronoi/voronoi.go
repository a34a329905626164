// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package voronoi partitions the plane around a star set into territory
// cells. The diagram is clipped to a padded envelope around the stars,
// cell polygons are rewound counter-clockwise around their owning star,
// and each cell caches its tight bounding box and area-weighted centroid.
package voronoi

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/2dChan/galaxygen/stargen"
	"github.com/golang/geo/r2"
	fortune "github.com/pzsz/voronoi"
)

// ErrInvariant marks geometry-invariant violations: cell ownership that
// cannot be recovered unambiguously, or input that makes recovery
// impossible (coincident star positions, duplicate ids). These indicate
// corrupted input or a matching bug and abort the build.
var ErrInvariant = errors.New("voronoi: geometry invariant violation")

const (
	// vertexEps collapses near-identical ring vertices (clip corners can
	// produce zero-length border edges).
	vertexEps = 1e-9
	// envelopeEps classifies a vertex as lying on the clip envelope.
	envelopeEps = 1e-6
)

// Cell is one star's territory. Vertices are counter-clockwise around the
// owning star with no duplicate closing point. Cells with fewer than 3
// vertices are degenerate but valid output: they keep whatever vertex data
// survived clipping and fall back to the site position as centroid.
type Cell struct {
	Star       stargen.StarID
	Vertices   []r2.Point
	BBox       r2.Rect
	Centroid   r2.Point
	OnEnvelope bool
}

// Partition maps each star that received a valid region to its cell.
type Partition struct {
	Cells    map[stargen.StarID]Cell
	Envelope r2.Rect
}

// CellOf returns the cell owned by id, if any.
func (p *Partition) CellOf(id stargen.StarID) (Cell, bool) {
	c, ok := p.Cells[id]
	return c, ok
}

// BuildOptions holds optional build parameters.
type BuildOptions struct {
	// MinPadding is the smallest envelope padding in world units.
	MinPadding float64
	// ExpandScale pads the envelope by this fraction of its larger side.
	ExpandScale float64
	// Envelope, when set, is used as the clip region instead of the
	// padded bound of the star positions.
	Envelope *r2.Rect
}

// BuildOption mutates BuildOptions and reports invalid values.
type BuildOption func(*BuildOptions) error

// WithPadding sets the envelope padding rule
// padding = max(minPadding, expandScale * max(width, height)).
func WithPadding(minPadding, expandScale float64) BuildOption {
	return func(o *BuildOptions) error {
		if minPadding < 0 || expandScale < 0 {
			return fmt.Errorf("voronoi: WithPadding: values must be non-negative, got %v, %v", minPadding, expandScale)
		}
		o.MinPadding = minPadding
		o.ExpandScale = expandScale
		return nil
	}
}

// WithEnvelope fixes the clip region instead of deriving it from the star
// positions. Stars outside it end up with degenerate cells.
func WithEnvelope(env r2.Rect) BuildOption {
	return func(o *BuildOptions) error {
		if env.IsEmpty() {
			return fmt.Errorf("voronoi: WithEnvelope: envelope must not be empty")
		}
		o.Envelope = &env
		return nil
	}
}

func resolveOptions(setters []BuildOption) (BuildOptions, error) {
	opts := BuildOptions{
		MinPadding:  50,
		ExpandScale: 0.1,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return BuildOptions{}, err
		}
	}
	return opts, nil
}

// Build computes the clipped Voronoi partition over stars. Fewer than 2
// stars yield an empty partition (a degenerate diagram, not an error).
func Build(stars []stargen.Star, setters ...BuildOption) (*Partition, error) {
	opts, err := resolveOptions(setters)
	if err != nil {
		return nil, err
	}
	return buildWithOptions(stars, opts)
}

func buildWithOptions(stars []stargen.Star, opts BuildOptions) (*Partition, error) {
	if err := checkDistinct(stars); err != nil {
		return nil, err
	}

	p := &Partition{
		Cells: make(map[stargen.StarID]Cell, len(stars)),
	}
	if len(stars) < 2 {
		return p, nil
	}
	if opts.Envelope != nil {
		p.Envelope = *opts.Envelope
	} else {
		p.Envelope = paddedEnvelope(stars, opts)
	}

	sites := make([]fortune.Vertex, len(stars))
	for i, s := range stars {
		sites[i] = fortune.Vertex{X: s.Pos.X, Y: s.Pos.Y}
	}
	bbox := fortune.NewBBox(p.Envelope.X.Lo, p.Envelope.X.Hi, p.Envelope.Y.Lo, p.Envelope.Y.Hi)
	diagram := fortune.ComputeDiagram(sites, bbox, true)

	resolve := newSiteResolver(stars)
	for _, fc := range diagram.Cells {
		idx, err := resolve.owner(fc.Site)
		if err != nil {
			return nil, err
		}
		star := stars[idx]
		if _, exists := p.Cells[star.ID]; exists {
			return nil, fmt.Errorf("%w: star %v resolved as owner of two cells", ErrInvariant, star.ID)
		}
		p.Cells[star.ID] = makeCell(star, fc, p.Envelope)
	}
	return p, nil
}

// makeCell extracts the cell ring, rewinds it CCW around the star and
// caches bbox and centroid.
func makeCell(star stargen.Star, fc *fortune.Cell, envelope r2.Rect) Cell {
	ring := make([]r2.Point, 0, len(fc.Halfedges))
	for _, he := range fc.Halfedges {
		v := he.GetStartpoint()
		ring = append(ring, r2.Point{X: v.X, Y: v.Y})
	}
	ring = stripClosure(ring)

	// Ring traversal direction from the diagram is not guaranteed, so
	// winding is imposed by sorting vertices by angle around the site.
	// Cells are convex, so the angular order is a simple polygon.
	sort.Slice(ring, func(i, j int) bool {
		ai := math.Atan2(ring[i].Y-star.Pos.Y, ring[i].X-star.Pos.X)
		aj := math.Atan2(ring[j].Y-star.Pos.Y, ring[j].X-star.Pos.X)
		return ai < aj
	})
	ring = dedupeAdjacent(ring)

	cell := Cell{
		Star:     star.ID,
		Vertices: ring,
		Centroid: star.Pos,
	}
	if len(ring) == 0 {
		cell.BBox = r2.RectFromPoints(star.Pos)
		return cell
	}
	cell.BBox = r2.RectFromPoints(ring...)
	if len(ring) >= 3 {
		cell.Centroid = polygonCentroid(ring, star.Pos)
	}
	for _, v := range ring {
		if onEnvelope(v, envelope) {
			cell.OnEnvelope = true
			break
		}
	}
	return cell
}

// stripClosure removes a duplicated closing vertex and collapses
// consecutive near-identical vertices.
func stripClosure(ring []r2.Point) []r2.Point {
	if len(ring) > 1 && samePoint(ring[0], ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}
	return dedupeAdjacent(ring)
}

func dedupeAdjacent(ring []r2.Point) []r2.Point {
	if len(ring) < 2 {
		return ring
	}
	out := ring[:1]
	for _, v := range ring[1:] {
		if !samePoint(v, out[len(out)-1]) {
			out = append(out, v)
		}
	}
	if len(out) > 1 && samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func samePoint(a, b r2.Point) bool {
	return math.Abs(a.X-b.X) <= vertexEps && math.Abs(a.Y-b.Y) <= vertexEps
}

func onEnvelope(v r2.Point, env r2.Rect) bool {
	return math.Abs(v.X-env.X.Lo) <= envelopeEps ||
		math.Abs(v.X-env.X.Hi) <= envelopeEps ||
		math.Abs(v.Y-env.Y.Lo) <= envelopeEps ||
		math.Abs(v.Y-env.Y.Hi) <= envelopeEps
}

// polygonCentroid returns the area-weighted centroid of a simple polygon.
// The arithmetic mean of the vertices is not used: for skewed polygons the
// two differ materially and only the area centroid is meaningful. Falls
// back to the given point for near-zero area.
func polygonCentroid(ring []r2.Point, fallback r2.Point) r2.Point {
	var area, cx, cy float64
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		cross := a.X*b.Y - b.X*a.Y
		area += cross
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	area /= 2
	if math.Abs(area) < vertexEps {
		return fallback
	}
	return r2.Point{X: cx / (6 * area), Y: cy / (6 * area)}
}

// signedArea is positive for counter-clockwise rings.
func signedArea(ring []r2.Point) float64 {
	var area float64
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// paddedEnvelope covers all star positions expanded so border cells stay
// bounded and reasonably sized.
func paddedEnvelope(stars []stargen.Star, opts BuildOptions) r2.Rect {
	env := r2.RectFromPoints(stars[0].Pos)
	for _, s := range stars[1:] {
		env = env.AddPoint(s.Pos)
	}
	pad := math.Max(opts.MinPadding, opts.ExpandScale*math.Max(env.X.Length(), env.Y.Length()))
	return r2.RectFromPoints(
		r2.Point{X: env.X.Lo - pad, Y: env.Y.Lo - pad},
		r2.Point{X: env.X.Hi + pad, Y: env.Y.Hi + pad},
	)
}

// checkDistinct rejects duplicate ids and coincident positions up front:
// coincident sites are the one input for which cell ownership cannot be
// recovered unambiguously.
func checkDistinct(stars []stargen.Star) error {
	ids := make(map[stargen.StarID]bool, len(stars))
	positions := make(map[r2.Point]stargen.StarID, len(stars))
	for _, s := range stars {
		if s.ID <= 0 {
			return fmt.Errorf("%w: star id must be positive, got %v", ErrInvariant, s.ID)
		}
		if ids[s.ID] {
			return fmt.Errorf("%w: duplicate star id %v", ErrInvariant, s.ID)
		}
		ids[s.ID] = true
		if other, ok := positions[s.Pos]; ok {
			return fmt.Errorf("%w: stars %v and %v share position (%v, %v)", ErrInvariant, other, s.ID, s.Pos.X, s.Pos.Y)
		}
		positions[s.Pos] = s.ID
	}
	return nil
}
