package geometry

import (
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// List is an insertion-ordered collection of shapes tested by linear scan.
// It implements Shape itself, so lists can be nested.
type List struct {
	shapes []Shape
}

// NewList creates a list holding the given shapes
func NewList(shapes ...Shape) *List {
	l := &List{}
	l.Add(shapes...)
	return l
}

// Add appends shapes to the list
func (l *List) Add(shapes ...Shape) {
	l.shapes = append(l.shapes, shapes...)
}

// Clear removes every shape
func (l *List) Clear() {
	l.shapes = nil
}

// Len returns the number of shapes
func (l *List) Len() int {
	return len(l.shapes)
}

// Shapes returns the shapes in insertion order
func (l *List) Shapes() []Shape {
	return l.shapes
}

// Hit returns the nearest intersection across all shapes.
// Each shape is tested against [rayT.Min, closest so far], so a later shape
// at exactly the same t does not replace an earlier one.
func (l *List) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, rayT.WithMax(closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// Validate checks every shape that knows how to validate itself
func (l *List) Validate() error {
	for i, shape := range l.shapes {
		if v, ok := shape.(material.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
		}
	}
	return nil
}
