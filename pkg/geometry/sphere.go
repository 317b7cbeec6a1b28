package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere. The radius must be positive for the sphere to be visible.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if s.Radius <= 0 {
		return nil, false
	}

	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	// Half-coefficient form of |origin + t*dir - center|^2 = r^2
	a := ray.Direction.LengthSquared()
	if a == 0 {
		// Zero-length direction has no parameterisation to solve for
		return nil, false
	}
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Find the nearest root that lies in the acceptable range
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Calculate outward normal (from center to hit point)
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// Validate checks the sphere's geometry and, when it can, its material
func (s *Sphere) Validate() error {
	var errs []error
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		errs = append(errs, fmt.Errorf("sphere radius must be positive and finite, got %f", s.Radius))
	}
	if !s.Center.IsFinite() {
		errs = append(errs, fmt.Errorf("sphere center must be finite, got %v", s.Center))
	}
	if s.Material == nil {
		errs = append(errs, errors.New("sphere has no material"))
	} else if v, ok := s.Material.(material.Validator); ok {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
