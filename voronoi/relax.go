// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"fmt"

	"github.com/2dChan/galaxygen/stargen"
)

// RelaxConfig tunes Lloyd relaxation. The zero value is a valid no-op
// (zero iterations return the input unchanged).
type RelaxConfig struct {
	// Iterations caps the number of relaxation rounds.
	Iterations int
	// StepFactor in [0,1] is the fraction of the site-to-centroid vector
	// applied per round.
	StepFactor float64
	// MaxDisplacement, when positive, clamps per-round movement magnitude.
	MaxDisplacement float64
	// ConvergenceEps, when positive, stops early once the mean
	// displacement across all sites falls below it.
	ConvergenceEps float64
}

// Validate reports the first malformed parameter, if any.
func (c RelaxConfig) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("voronoi: relax iterations must be non-negative, got %v", c.Iterations)
	}
	if c.StepFactor < 0 || c.StepFactor > 1 {
		return fmt.Errorf("voronoi: relax step factor must be in [0,1], got %v", c.StepFactor)
	}
	if c.MaxDisplacement < 0 {
		return fmt.Errorf("voronoi: relax max displacement must be non-negative, got %v", c.MaxDisplacement)
	}
	if c.ConvergenceEps < 0 {
		return fmt.Errorf("voronoi: relax convergence eps must be non-negative, got %v", c.ConvergenceEps)
	}
	return nil
}

// Relax runs Lloyd relaxation: each round recomputes the partition and
// moves every star a StepFactor fraction toward its cell's centroid,
// clamped into the envelope. The envelope is derived once from the input
// star set and held fixed across rounds, so border cells relax against a
// stable domain instead of chasing their own padding. Stars with
// degenerate cells (or no cell) keep their position for that round. The
// input slice is never mutated; the result is a pure function of
// (stars, cfg, setters).
func Relax(stars []stargen.Star, cfg RelaxConfig, setters ...BuildOption) ([]stargen.Star, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := resolveOptions(setters)
	if err != nil {
		return nil, err
	}

	cur := make([]stargen.Star, len(stars))
	copy(cur, stars)
	if cfg.Iterations == 0 || len(cur) < 2 {
		return cur, nil
	}
	if opts.Envelope == nil {
		env := paddedEnvelope(cur, opts)
		opts.Envelope = &env
	}

	for range cfg.Iterations {
		p, err := buildWithOptions(cur, opts)
		if err != nil {
			return nil, err
		}

		total := 0.0
		for i, s := range cur {
			cell, ok := p.Cells[s.ID]
			if !ok || len(cell.Vertices) < 3 {
				continue
			}
			delta := cell.Centroid.Sub(s.Pos).Mul(cfg.StepFactor)
			if cfg.MaxDisplacement > 0 {
				if n := delta.Norm(); n > cfg.MaxDisplacement {
					delta = delta.Mul(cfg.MaxDisplacement / n)
				}
			}
			next := p.Envelope.ClampPoint(s.Pos.Add(delta))
			total += next.Sub(s.Pos).Norm()
			cur[i].Pos = next
		}

		if cfg.ConvergenceEps > 0 && total/float64(len(cur)) < cfg.ConvergenceEps {
			break
		}
	}
	return cur, nil
}
