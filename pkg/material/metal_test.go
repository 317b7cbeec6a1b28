package material

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflectionIsDeterministic(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.8, 0.7)
	metal := NewMetal(albedo, 0.0)
	sampler := newSequenceSampler(0.1, 0.2, 0.3)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize())
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.Reflect(rayIn.Direction, hit.Normal)
	if !vecNear(scatter.Scattered.Direction, expected, 1e-12) {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if sampler.draws != 0 {
		t.Errorf("Mirror metal should not consume random numbers, used %d", sampler.draws)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_FuzzBelowSurfaceIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)

	// (0.5, 0.25, 0.5) maps to (0, -0.5, 0), i.e. a unit perturbation straight down
	sampler := newSequenceSampler(0.5, 0.25, 0.5)

	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if didScatter {
		t.Errorf("Expected absorption, got scattered direction %v", scatter.Scattered.Direction)
	}
	if scatter.Scattered.Direction.Dot(hit.Normal) > 0 {
		t.Errorf("Absorbed direction should point into the surface, got %v", scatter.Scattered.Direction)
	}
}

func TestMetal_FuzzyReflectionStaysNearMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	sampler := core.NewSeededSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}
	mirror := core.NewVec3(0, 1, 0)

	for i := 0; i < 200; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			continue
		}
		deviation := scatter.Scattered.Direction.Subtract(mirror).Length()
		if deviation > 0.3+1e-9 {
			t.Fatalf("Fuzzy reflection deviates by %f, expected at most fuzz", deviation)
		}
	}
}

func TestMetal_Validate(t *testing.T) {
	if err := NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0.2).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	bad := &Metal{Albedo: core.NewVec3(math.NaN(), 0, 0)}
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for NaN albedo")
	}
}
