package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Layered represents a material with two layers - an outer and inner material
// Light hits the outer layer first, then if it scatters inward, hits the inner layer
// This simulates coatings, films, or other layered surface treatments
type Layered struct {
	Outer Material // Outer layer material (e.g., coating, surface treatment)
	Inner Material // Inner layer material (e.g., base material)
}

// NewLayered creates a new layered material
func NewLayered(outer, inner Material) *Layered {
	return &Layered{
		Outer: outer,
		Inner: inner,
	}
}

// Scatter implements the Material interface for layered scattering
func (l *Layered) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Step 1: Ray hits the outer material first
	outerHit := hit
	outerHit.Material = l.Outer

	outerResult, outerScatters := l.Outer.Scatter(rayIn, outerHit, sampler)
	if !outerScatters {
		return ScatterResult{}, false
	}

	// Step 2: A scattered ray pointing into the surface reaches the inner layer
	scatteredDirection := outerResult.Scattered.Direction.Normalize()
	if scatteredDirection.Dot(hit.Normal) >= 0 {
		// Ray scattered outward from outer layer - only outer interaction
		return outerResult, true
	}

	// Step 3: The inner material is hit at the same point with the transmitted direction
	innerRay := core.NewRay(hit.Point, scatteredDirection)
	innerHit := hit
	innerHit.Material = l.Inner

	innerResult, innerScatters := l.Inner.Scatter(innerRay, innerHit, sampler)
	if !innerScatters {
		// Inner material absorbs - return outer result only
		return outerResult, true
	}

	// Step 4: Light is filtered through both layers, the final ray comes from the inner layer
	return ScatterResult{
		Scattered:   innerResult.Scattered,
		Attenuation: outerResult.Attenuation.MultiplyVec(innerResult.Attenuation),
	}, true
}

// Validate checks both layers
func (l *Layered) Validate() error {
	if l.Outer == nil || l.Inner == nil {
		return errors.New("layered material requires outer and inner materials")
	}
	var errs []error
	if err := validate(l.Outer); err != nil {
		errs = append(errs, fmt.Errorf("outer: %w", err))
	}
	if err := validate(l.Inner); err != nil {
		errs = append(errs, fmt.Errorf("inner: %w", err))
	}
	return errors.Join(errs...)
}
