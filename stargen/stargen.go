// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package stargen places a star population using a spiral-arm/core-bulge
// density model blended with a coherent-noise field. Generation is a pure
// function of the injected RNG stream and config: the same seed always
// yields a bit-identical star set.
package stargen

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/2dChan/galaxygen/noisefield"
	"github.com/golang/geo/r2"
)

// ErrInvalidArgument marks malformed generation parameters. It is
// surfaced before any star is placed and never retried.
var ErrInvalidArgument = errors.New("stargen: invalid argument")

// StarID identifies a star within one generation run. IDs are positive,
// unique and assigned sequentially starting at 1.
type StarID int

// SpriteRef is an opaque asset identifier. The generator only ever picks
// one out of the supplied list; decoding it is the renderer's business.
type SpriteRef string

// Star is an immutable record of one generated star.
type Star struct {
	ID            StarID
	Pos           r2.Point
	Size          float64
	Density       float64 // in [0,1], drives all visual attributes
	Sprite        SpriteRef
	RotationSpeed float64
}

// Result is the outcome of one generation run.
type Result struct {
	Stars  map[StarID]Star
	NextID StarID
}

// Generate places count stars. The RNG carries all randomness; callers
// seed it to make runs reproducible. It returns an error for a nil RNG,
// a negative count, an empty sprite list or an invalid config.
func Generate(rng *rand.Rand, sprites []SpriteRef, count int, cfg Config) (*Result, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: rng must not be nil", ErrInvalidArgument)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: star count must be non-negative, got %v", ErrInvalidArgument, count)
	}
	if len(sprites) == 0 {
		return nil, fmt.Errorf("%w: sprite list must not be empty", ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	field, err := noisefield.New(cfg.Noise)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Stars:  make(map[StarID]Star, count),
		NextID: 1,
	}
	for range count {
		var pos r2.Point
		var density float64
		if rng.Float64() < cfg.CoreStarProbability {
			pos, density = sampleCore(rng, cfg, field)
		} else {
			pos, density = sampleArm(rng, cfg, field)
		}

		id := res.NextID
		res.NextID++
		res.Stars[id] = Star{
			ID:            id,
			Pos:           pos,
			Size:          lerp(cfg.MinSize, cfg.MaxSize, density*density),
			Density:       density,
			Sprite:        sprites[spriteIndex(density, len(sprites))],
			RotationSpeed: lerp(cfg.MinRotationSpeed, cfg.MaxRotationSpeed, density),
		}
	}
	return res, nil
}

// sampleCore draws a star from the central bulge. The radius exponent
// biases mass toward the center; density falls off with distance down to
// the configured edge floor.
func sampleCore(rng *rand.Rand, cfg Config, field *noisefield.Field) (r2.Point, float64) {
	r := cfg.CoreRadius * math.Pow(rng.Float64(), 1/cfg.CoreRadiusExponent)
	theta := rng.Float64() * 2 * math.Pi
	pos := r2.Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}

	falloff := math.Pow(1-r/cfg.CoreRadius, cfg.CoreFalloffPower)
	structural := cfg.CoreCenterWeight*falloff + (1-cfg.CoreCenterWeight)*cfg.CoreEdgeDensity

	return pos, finishDensity(rng, cfg, field, pos, structural)
}

// sampleArm draws a star from one of the spiral arms. The angular offset
// from the arm's ideal angle is gaussian; its spread widens with radius
// (flare) and is then tightened back toward the rim.
func sampleArm(rng *rand.Rand, cfg Config, field *noisefield.Field) (r2.Point, float64) {
	arm := rng.Intn(cfg.ArmCount)
	baseAngle := 2 * math.Pi * float64(arm) / float64(cfg.ArmCount)

	r := cfg.MaxRadius * math.Pow(math.Sqrt(rng.Float64()), cfg.RadialBias)
	r += (rng.Float64() - 0.5) * cfg.RadiusJitter
	r = clamp(r, 0, cfg.MaxRadius)
	nr := r / cfg.MaxRadius

	spreadBlend := math.Pow(nr, cfg.FlarePower)
	spread := lerp(cfg.CoreSpread, cfg.EdgeSpread, spreadBlend) * (1 - cfg.EdgeTightening*nr)

	ideal := baseAngle + nr*cfg.ArmTurns*2*math.Pi
	offset := rng.NormFloat64() * spread
	theta := ideal + offset
	pos := r2.Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}

	alignment := math.Pow(math.Exp(-0.5*(offset/spread)*(offset/spread)), cfg.ArmSharpness)
	falloff := math.Pow(1-nr, cfg.RadialFalloffPower)
	structural := cfg.ArmWeight*alignment + (1-cfg.ArmWeight)*falloff

	return pos, finishDensity(rng, cfg, field, pos, structural)
}

// finishDensity blends the structural density with the noise field, adds
// jitter and clamps to [0,1].
func finishDensity(rng *rand.Rand, cfg Config, field *noisefield.Field, pos r2.Point, structural float64) float64 {
	d := (1-cfg.NoiseWeight)*structural + cfg.NoiseWeight*field.Sample(pos.X, pos.Y)
	d += (rng.Float64() - 0.5) * cfg.DensityJitter
	return clamp(d, 0, 1)
}

// spriteIndex biases toward later (brighter) sprites at higher density.
func spriteIndex(density float64, n int) int {
	i := int(math.Pow(density, 0.7) * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
