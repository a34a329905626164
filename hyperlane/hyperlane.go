// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package hyperlane derives a planar connectivity graph between stars from
// the Delaunay triangulation of their positions. Each triangulation edge
// becomes one hyperlane with seeded visual attributes, and a symmetric
// adjacency index is built over the deduplicated edge set.
package hyperlane

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/2dChan/galaxygen/stargen"
	"github.com/golang/geo/r2"
)

// ErrInvariant marks geometry-invariant violations: triangulation output
// that cannot be mapped back to the input stars, or input that makes the
// mapping ambiguous (coincident positions, duplicate ids). These indicate
// corrupted input or a matching bug and abort the build.
var ErrInvariant = errors.New("hyperlane: geometry invariant violation")

// LaneID identifies a hyperlane within one build. IDs are positive,
// unique and assigned sequentially starting at 1.
type LaneID int

// Color is an RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float64
}

// Hyperlane is an immutable record of one undirected lane between two
// distinct stars. Each unordered (From, To) pair appears at most once per
// build.
type Hyperlane struct {
	ID              LaneID
	From            stargen.StarID
	To              stargen.StarID
	BaseWidth       float64
	ColorStart      Color
	ColorEnd        Color
	GlowColor       Color
	AnimationOffset float64
}

// Neighbor is one adjacency entry: the star on the other end of a lane.
type Neighbor struct {
	ID   stargen.StarID
	Lane Hyperlane
}

// Graph is the hyperlane set plus its symmetric adjacency index.
type Graph struct {
	Lanes []Hyperlane
	// Adjacency maps a star to its neighbors in lane-creation order. It
	// is symmetric: if b lists a, then a lists b via the same lane.
	Adjacency map[stargen.StarID][]Neighbor
	NextID    LaneID
}

// NeighborsOf returns the adjacency entries for id, or nil if the star
// has no lanes.
func (g *Graph) NeighborsOf(id stargen.StarID) []Neighbor {
	return g.Adjacency[id]
}

// Default visual attributes. Per-lane variation is drawn around these
// from the build RNG.
var (
	defaultLaneWidth = 1.6

	laneColorStart = Color{R: 0.35, G: 0.55, B: 0.95, A: 0.85}
	laneColorEnd   = Color{R: 0.55, G: 0.40, B: 0.90, A: 0.85}
	laneGlowColor  = Color{R: 0.60, G: 0.75, B: 1.00, A: 0.35}
)

const defaultVisualSeed = 0x1a7e

// BuildOptions holds optional build parameters.
type BuildOptions struct {
	Rand      *rand.Rand
	BaseWidth float64
}

// BuildOption mutates BuildOptions and reports invalid values.
type BuildOption func(*BuildOptions) error

// WithRand sets the RNG used for per-lane visual attributes. Builds with
// the same star set and an equally seeded RNG are bit-identical.
func WithRand(rng *rand.Rand) BuildOption {
	return func(o *BuildOptions) error {
		if rng == nil {
			return fmt.Errorf("hyperlane: WithRand: rng must not be nil")
		}
		o.Rand = rng
		return nil
	}
}

// WithBaseWidth sets the mean lane width before per-lane variation.
func WithBaseWidth(w float64) BuildOption {
	return func(o *BuildOptions) error {
		if w < 0 {
			return fmt.Errorf("hyperlane: WithBaseWidth: width must be non-negative, got %v", w)
		}
		o.BaseWidth = w
		return nil
	}
}

// Build computes the hyperlane graph over stars. A star set of size 0 or
// 1 yields an empty graph. Duplicate star ids or exactly coincident star
// positions are invariant violations and abort the build: they are the
// only inputs that can make endpoint recovery ambiguous.
func Build(stars []stargen.Star, setters ...BuildOption) (*Graph, error) {
	opts := BuildOptions{
		BaseWidth: defaultLaneWidth,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(defaultVisualSeed))
	}

	if err := checkDistinct(stars); err != nil {
		return nil, err
	}

	edges, err := triangulationEdges(stars)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		Lanes:     make([]Hyperlane, 0, len(edges)),
		Adjacency: make(map[stargen.StarID][]Neighbor, len(stars)),
		NextID:    1,
	}
	seen := make(map[[2]stargen.StarID]bool, len(edges))
	for _, e := range edges {
		from := stars[e[0]].ID
		to := stars[e[1]].ID
		if from == to {
			continue
		}
		key := [2]stargen.StarID{min(from, to), max(from, to)}
		if seen[key] {
			continue
		}
		seen[key] = true

		lane := synthesizeLane(opts.Rand, g.NextID, from, to, opts.BaseWidth)
		g.NextID++
		g.Lanes = append(g.Lanes, lane)
	}

	for _, lane := range g.Lanes {
		g.Adjacency[lane.From] = append(g.Adjacency[lane.From], Neighbor{ID: lane.To, Lane: lane})
		g.Adjacency[lane.To] = append(g.Adjacency[lane.To], Neighbor{ID: lane.From, Lane: lane})
	}
	return g, nil
}

// synthesizeLane draws per-lane visual attributes: width variation, a
// color jitter around the palette endpoints and an animation phase.
func synthesizeLane(rng *rand.Rand, id LaneID, from, to stargen.StarID, baseWidth float64) Hyperlane {
	width := baseWidth * (0.75 + rng.Float64()*0.5)
	return Hyperlane{
		ID:              id,
		From:            from,
		To:              to,
		BaseWidth:       width,
		ColorStart:      jitterColor(rng, laneColorStart, 0.08),
		ColorEnd:        jitterColor(rng, laneColorEnd, 0.08),
		GlowColor:       jitterColor(rng, laneGlowColor, 0.05),
		AnimationOffset: rng.Float64() * 2 * math.Pi,
	}
}

func jitterColor(rng *rand.Rand, c Color, amount float64) Color {
	return Color{
		R: clamp01(c.R + (rng.Float64()-0.5)*amount),
		G: clamp01(c.G + (rng.Float64()-0.5)*amount),
		B: clamp01(c.B + (rng.Float64()-0.5)*amount),
		A: c.A,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// checkDistinct rejects duplicate ids, non-positive ids and coincident
// positions before any geometry runs.
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
