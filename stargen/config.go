// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package stargen

import (
	"fmt"

	"github.com/2dChan/galaxygen/noisefield"
)

// Config tunes the spiral-arm/core-bulge density model.
//
// The generator draws each star from one of two modes: a core-bulge sample
// with probability CoreStarProbability, otherwise a spiral-arm sample. Both
// modes blend their structural density with the noise field by NoiseWeight.
type Config struct {
	// CoreStarProbability is the chance a star is drawn from the central
	// bulge instead of a spiral arm.
	CoreStarProbability float64

	// Core-bulge parameters.
	CoreRadius         float64 // bulge extent in world units
	CoreRadiusExponent float64 // >1 biases mass toward the center
	CoreFalloffPower   float64 // center-proximity falloff exponent
	CoreEdgeDensity    float64 // density floor at the bulge edge
	CoreCenterWeight   float64 // blend between falloff and the edge floor

	// Spiral-arm parameters.
	ArmCount           int     // evenly spaced arm base angles
	MaxRadius          float64 // galaxy extent in world units
	RadialBias         float64 // exponent on sqrt-radius draw
	RadiusJitter       float64 // uniform radial jitter in world units
	ArmTurns           float64 // arm winding over the full radius, in turns
	CoreSpread         float64 // angular stddev near the center, radians
	EdgeSpread         float64 // angular stddev at the rim, radians
	FlarePower         float64 // exponent widening spread with radius
	EdgeTightening     float64 // [0,1) narrows spread toward the rim
	ArmSharpness       float64 // exponent on the arm-alignment gaussian
	ArmWeight          float64 // blend between arm alignment and falloff
	RadialFalloffPower float64 // (1-r/maxR)^power falloff exponent

	// Density post-processing.
	NoiseWeight   float64 // blend with the noise field
	DensityJitter float64 // uniform jitter applied after blending

	// Visual attribute ranges derived from density.
	MinSize          float64
	MaxSize          float64
	MinRotationSpeed float64
	MaxRotationSpeed float64

	// Noise configures the underlying coherent-noise field.
	Noise noisefield.Config
}

// DefaultConfig returns a four-armed galaxy with a compact bright bulge.
func DefaultConfig() Config {
	return Config{
		CoreStarProbability: 0.25,

		CoreRadius:         220,
		CoreRadiusExponent: 2.2,
		CoreFalloffPower:   1.6,
		CoreEdgeDensity:    0.15,
		CoreCenterWeight:   0.75,

		ArmCount:           4,
		MaxRadius:          1000,
		RadialBias:         1.15,
		RadiusJitter:       40,
		ArmTurns:           0.85,
		CoreSpread:         0.45,
		EdgeSpread:         0.12,
		FlarePower:         1.4,
		EdgeTightening:     0.65,
		ArmSharpness:       2.5,
		ArmWeight:          0.7,
		RadialFalloffPower: 1.2,

		NoiseWeight:   0.35,
		DensityJitter: 0.05,

		MinSize:          2,
		MaxSize:          9,
		MinRotationSpeed: 0.02,
		MaxRotationSpeed: 0.4,

		Noise: noisefield.DefaultConfig(),
	}
}

// Validate reports the first malformed parameter, if any.
func (c Config) Validate() error {
	if c.CoreStarProbability < 0 || c.CoreStarProbability > 1 {
		return fmt.Errorf("%w: core star probability must be in [0,1], got %v", ErrInvalidArgument, c.CoreStarProbability)
	}
	if c.CoreRadius <= 0 {
		return fmt.Errorf("%w: core radius must be positive, got %v", ErrInvalidArgument, c.CoreRadius)
	}
	if c.CoreRadiusExponent <= 0 {
		return fmt.Errorf("%w: core radius exponent must be positive, got %v", ErrInvalidArgument, c.CoreRadiusExponent)
	}
	if c.CoreCenterWeight < 0 || c.CoreCenterWeight > 1 {
		return fmt.Errorf("%w: core center weight must be in [0,1], got %v", ErrInvalidArgument, c.CoreCenterWeight)
	}
	if c.ArmCount < 1 {
		return fmt.Errorf("%w: arm count must be at least 1, got %v", ErrInvalidArgument, c.ArmCount)
	}
	if c.MaxRadius <= 0 {
		return fmt.Errorf("%w: max radius must be positive, got %v", ErrInvalidArgument, c.MaxRadius)
	}
	if c.CoreSpread <= 0 || c.EdgeSpread <= 0 {
		return fmt.Errorf("%w: arm spreads must be positive, got core %v edge %v", ErrInvalidArgument, c.CoreSpread, c.EdgeSpread)
	}
	if c.EdgeTightening < 0 || c.EdgeTightening >= 1 {
		return fmt.Errorf("%w: edge tightening must be in [0,1), got %v", ErrInvalidArgument, c.EdgeTightening)
	}
	if c.ArmWeight < 0 || c.ArmWeight > 1 {
		return fmt.Errorf("%w: arm weight must be in [0,1], got %v", ErrInvalidArgument, c.ArmWeight)
	}
	if c.NoiseWeight < 0 || c.NoiseWeight > 1 {
		return fmt.Errorf("%w: noise weight must be in [0,1], got %v", ErrInvalidArgument, c.NoiseWeight)
	}
	if c.MinSize < 0 || c.MaxSize < c.MinSize {
		return fmt.Errorf("%w: size range must satisfy 0 <= min <= max, got [%v, %v]", ErrInvalidArgument, c.MinSize, c.MaxSize)
	}
	if c.MaxRotationSpeed < c.MinRotationSpeed {
		return fmt.Errorf("%w: rotation speed range must satisfy min <= max, got [%v, %v]", ErrInvalidArgument,
			c.MinRotationSpeed, c.MaxRotationSpeed)
	}
	return c.Noise.Validate()
}
