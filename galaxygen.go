// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package galaxygen procedurally builds a navigable galaxy world model:
// a star population with spatially organic clustering, a hyperlane graph
// derived from the Delaunay triangulation of the star positions, and a
// clipped Voronoi partition of the plane keyed to the same stars.
//
// Generation is deterministic: the same Config always produces a
// bit-identical World. The World is an immutable snapshot published as a
// whole; consumers (rendering, UI, selection) read it through the
// accessor methods and never mutate it.
package galaxygen

import (
	"context"
	"fmt"
	"iter"
	"math/rand"
	"sort"

	"github.com/2dChan/galaxygen/hyperlane"
	"github.com/2dChan/galaxygen/stargen"
	"github.com/2dChan/galaxygen/voronoi"
	"golang.org/x/sync/errgroup"
)

// Re-exported model types, so consumers only need the root package.
type (
	Star      = stargen.Star
	StarID    = stargen.StarID
	SpriteRef = stargen.SpriteRef
	Hyperlane = hyperlane.Hyperlane
	LaneID    = hyperlane.LaneID
	Neighbor  = hyperlane.Neighbor
	Cell      = voronoi.Cell
)

// Config drives one world build.
type Config struct {
	// Seed drives every random draw in the build.
	Seed int64
	// StarCount is the number of stars to place.
	StarCount int
	// Sprites is the opaque asset list stars are assigned from. Must not
	// be empty.
	Sprites []SpriteRef
	// Stars tunes the spiral/bulge placement model.
	Stars stargen.Config
	// Relax optionally regularizes star spacing before the graph and
	// partition are built. The zero value disables it.
	Relax voronoi.RelaxConfig
}

// DefaultConfig returns a medium-sized four-armed galaxy.
func DefaultConfig() Config {
	return Config{
		Seed:      1,
		StarCount: 4000,
		Sprites:   []SpriteRef{"star-dim", "star-soft", "star-bright", "star-core"},
		Stars:     stargen.DefaultConfig(),
	}
}

// World is an immutable generated galaxy snapshot.
type World struct {
	stars     map[StarID]Star
	order     []StarID
	graph     *hyperlane.Graph
	partition *voronoi.Partition
}

// Generate builds a World from cfg. The star set is generated first; the
// hyperlane graph and Voronoi partition are then built concurrently, since
// both only read the immutable star set. Cancellation is honored between
// phases only, so a returned World is never partially consistent.
func Generate(ctx context.Context, cfg Config) (*World, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	res, err := stargen.Generate(rng, cfg.Sprites, cfg.StarCount, cfg.Stars)
	if err != nil {
		return nil, err
	}

	order := make([]StarID, 0, len(res.Stars))
	for id := range res.Stars {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	stars := make([]Star, len(order))
	for i, id := range order {
		stars[i] = res.Stars[id]
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("galaxygen: generation canceled: %w", err)
	}

	if cfg.Relax.Iterations > 0 {
		stars, err = voronoi.Relax(stars, cfg.Relax)
		if err != nil {
			return nil, err
		}
		for _, s := range stars {
			res.Stars[s.ID] = s
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("galaxygen: generation canceled: %w", err)
		}
	}

	w := &World{
		stars: res.Stars,
		order: order,
	}

	// The two consumers have no data dependency on each other and only
	// read the immutable star slice. Neither is cancelable mid-phase.
	laneRNG := rand.New(rand.NewSource(cfg.Seed + 1))
	var g errgroup.Group
	g.Go(func() error {
		graph, err := hyperlane.Build(stars, hyperlane.WithRand(laneRNG))
		if err != nil {
			return err
		}
		w.graph = graph
		return nil
	})
	g.Go(func() error {
		partition, err := voronoi.Build(stars)
		if err != nil {
			return err
		}
		w.partition = partition
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return w, nil
}

// NumStars returns the number of stars in the world.
func (w *World) NumStars() int {
	return len(w.order)
}

// StarByID returns the star with the given id, if present.
func (w *World) StarByID(id StarID) (Star, bool) {
	s, ok := w.stars[id]
	return s, ok
}

// Stars iterates all stars in ascending id order.
func (w *World) Stars() iter.Seq[Star] {
	return func(yield func(Star) bool) {
		for _, id := range w.order {
			if !yield(w.stars[id]) {
				return
			}
		}
	}
}

// Lanes iterates all hyperlanes in creation order.
func (w *World) Lanes() iter.Seq[Hyperlane] {
	return func(yield func(Hyperlane) bool) {
		for _, lane := range w.graph.Lanes {
			if !yield(lane) {
				return
			}
		}
	}
}

// NumLanes returns the number of hyperlanes in the world.
func (w *World) NumLanes() int {
	return len(w.graph.Lanes)
}

// NeighborsOf returns the stars directly connected to id, with the lane
// that connects each. The result is nil for unknown or isolated stars.
func (w *World) NeighborsOf(id StarID) []Neighbor {
	return w.graph.NeighborsOf(id)
}

// CellOf returns the Voronoi territory owned by id, if any.
func (w *World) CellOf(id StarID) (Cell, bool) {
	return w.partition.CellOf(id)
}

// Cells iterates all (star id, cell) pairs in ascending star id order.
func (w *World) Cells() iter.Seq2[StarID, Cell] {
	return func(yield func(StarID, Cell) bool) {
		for _, id := range w.order {
			cell, ok := w.partition.Cells[id]
			if !ok {
				continue
			}
			if !yield(id, cell) {
				return
			}
		}
	}
}
