// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package noisefield provides a deterministic multi-octave coherent-noise
// sampler over continuous 2D coordinates. Samples are a pure function of
// (seed, config, x, y) and always fall in [0, 1].
package noisefield

import (
	"errors"
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// ErrInvalidConfig marks malformed field parameters. It is surfaced
// before any sampling begins and never retried.
var ErrInvalidConfig = errors.New("noisefield: invalid config")

// Config holds the fractal layering parameters of a Field.
type Config struct {
	// Seed selects the gradient tables. Octave k uses Seed+k so layers
	// stay decorrelated.
	Seed int64
	// Frequency is the base sampling frequency of the first octave.
	Frequency float64
	// Octaves is the number of noise layers summed together.
	Octaves int
	// Gain scales the amplitude of each successive octave.
	Gain float64
	// Lacunarity scales the frequency of each successive octave.
	Lacunarity float64
}

// DefaultConfig returns a config suitable for galaxy-scale density fields.
func DefaultConfig() Config {
	return Config{
		Seed:       0,
		Frequency:  0.004,
		Octaves:    4,
		Gain:       0.5,
		Lacunarity: 2.0,
	}
}

// Validate reports the first malformed parameter, if any.
func (c Config) Validate() error {
	if c.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be positive, got %v", ErrInvalidConfig, c.Frequency)
	}
	if c.Octaves < 1 {
		return fmt.Errorf("%w: octave count must be at least 1, got %v", ErrInvalidConfig, c.Octaves)
	}
	if c.Gain <= 0 {
		return fmt.Errorf("%w: gain must be positive, got %v", ErrInvalidConfig, c.Gain)
	}
	if c.Lacunarity < 1 {
		return fmt.Errorf("%w: lacunarity must be at least 1, got %v", ErrInvalidConfig, c.Lacunarity)
	}
	return nil
}

// Field is an immutable multi-octave noise sampler.
type Field struct {
	cfg     Config
	octaves []opensimplex.Noise
	ampSum  float64
}

// New builds a Field from cfg. It returns an error if cfg is invalid.
func New(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Field{
		cfg:     cfg,
		octaves: make([]opensimplex.Noise, cfg.Octaves),
	}
	amp := 1.0
	for k := range cfg.Octaves {
		f.octaves[k] = opensimplex.New(cfg.Seed + int64(k))
		f.ampSum += amp
		amp *= cfg.Gain
	}
	return f, nil
}

// Sample returns the fractal noise value at (x, y), remapped to [0, 1].
func (f *Field) Sample(x, y float64) float64 {
	sum := 0.0
	amp := 1.0
	freq := f.cfg.Frequency
	for _, n := range f.octaves {
		sum += amp * n.Eval2(x*freq, y*freq)
		amp *= f.cfg.Gain
		freq *= f.cfg.Lacunarity
	}

	// Normalize the sum back to [-1, 1] before remapping to [0, 1].
	v := (sum/f.ampSum + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
