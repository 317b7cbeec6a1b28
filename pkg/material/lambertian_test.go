package material

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.4, 0.3)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, -0.5),
		Normal:    core.NewVec3(0, 0, 1),
		T:         0.5,
		FrontFace: true,
		Material:  lambertian,
	}
	rayIn := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for i := 0; i < 500; i++ {
		result, scattered := lambertian.Scatter(rayIn, hit, sampler)
		if !scattered {
			t.Fatal("Lambertian should never absorb")
		}
		if result.Attenuation != albedo {
			t.Errorf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		if result.Scattered.Origin != hit.Point {
			t.Errorf("Scattered ray should start at hit point, got %v", result.Scattered.Origin)
		}
		// normal + unit vector never points into the surface
		if result.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Errorf("Scattered direction below surface: %v", result.Scattered.Direction)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	normal := core.NewVec3(0, 0, 1)

	// (0.5, 0.5, 0.25) maps to (0, 0, -0.5) in the unit ball, which normalizes
	// to exactly -normal and cancels the normal out
	sampler := newSequenceSampler(0.5, 0.5, 0.25)

	hit := HitRecord{Point: core.NewVec3(1, 2, 3), Normal: normal, FrontFace: true}
	result, scattered := lambertian.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), hit, sampler)

	if !scattered {
		t.Fatal("Lambertian should scatter even for degenerate directions")
	}
	if result.Scattered.Direction != normal {
		t.Errorf("Expected fallback to normal %v, got %v", normal, result.Scattered.Direction)
	}
}

func TestLambertian_Validate(t *testing.T) {
	if err := NewLambertian(core.NewVec3(0.1, 0.2, 0.3)).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := NewLambertian(core.NewVec3(-0.1, 0.2, 0.3)).Validate(); err == nil {
		t.Error("Expected error for negative albedo")
	}
}
