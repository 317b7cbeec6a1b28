package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var defaultRange = core.NewInterval(0.001, 1000.0)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"parallel offset", core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))},
		{"passes beside", core.NewRay(core.NewVec3(1.01, 0, 5), core.NewVec3(0, 0, -1))},
		{"pointing away", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(tt.ray, core.NewInterval(0, math.Inf(1)))
			if isHit {
				t.Errorf("Expected miss, but got hit at t=%f", hit.T)
			}
		})
	}
}

func TestSphere_Hit_TowardCenter(t *testing.T) {
	center := core.NewVec3(1, -2, -7)
	radius := 1.5
	sphere := NewSphere(center, radius, nil)

	origins := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(10, 3, -2),
		core.NewVec3(-4, -2, -20),
	}

	for _, origin := range origins {
		// Direction length deliberately not 1 to exercise the half-b form
		direction := center.Subtract(origin).Multiply(0.37)
		ray := core.NewRay(origin, direction)

		hit, isHit := sphere.Hit(ray, defaultRange)
		if !isHit {
			t.Fatalf("Expected hit from %v", origin)
		}

		distance := center.Subtract(origin).Length()
		hitDistance := hit.T * direction.Length()
		if math.Abs(hitDistance-(distance-radius)) > 1e-9 {
			t.Errorf("Expected hit distance %f, got %f", distance-radius, hitDistance)
		}

		expectedNormal := hit.Point.Subtract(center).Normalize()
		if !vecNear(hit.Normal, expectedNormal, 1e-9) {
			t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
		}
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, defaultRange)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !vecNear(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if ray.Direction.Dot(hit.Normal) > 0 {
				t.Errorf("Normal %v should face against ray direction %v", hit.Normal, ray.Direction)
			}
		})
	}
}

func TestSphere_Hit_FrontFaceMatchesOutwardNormal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, nil)
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 500; i++ {
		origin := core.RandomVec3Range(sampler, -2, 2)
		direction := core.RandomUnitVector(sampler)
		ray := core.NewRay(origin, direction)

		hit, isHit := sphere.Hit(ray, defaultRange)
		if !isHit {
			continue
		}

		outward := hit.Point.Subtract(sphere.Center).Divide(sphere.Radius)
		if hit.FrontFace != (ray.Direction.Dot(outward) < 0) {
			t.Fatalf("FrontFace %t inconsistent with outward normal %v for ray %v", hit.FrontFace, outward, ray)
		}
		if ray.Direction.Dot(hit.Normal) > 0 {
			t.Fatalf("Normal %v faces along ray direction %v", hit.Normal, ray.Direction)
		}
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, defaultRange)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	if !vecNear(hit.Point, core.NewVec3(1, 0, 0), 1e-9) {
		t.Errorf("Expected hit point (1, 0, 0), got %v", hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 0.5))
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Test tMin bound
	hit, isHit = sphere.Hit(ray, core.NewInterval(3.5, 1000.0))
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root inside
	hit, isHit = sphere.Hit(ray, core.NewInterval(1.5, 1000.0))
	if !isHit || math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected far root at t=3, got hit=%t", isHit)
	}

	// Root exactly on a bound is excluded
	hit, isHit = sphere.Hit(ray, core.NewInterval(0.001, 1.0))
	if isHit {
		t.Errorf("Root on the open upper bound should be excluded, got t=%f", hit.T)
	}
}

func TestSphere_Hit_Degenerate(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	tests := []struct {
		name   string
		sphere *Sphere
		ray    core.Ray
	}{
		{
			name:   "zero-length direction",
			sphere: NewSphere(core.NewVec3(0, 0, 0), 1.0, mat),
			ray:    core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0)),
		},
		{
			name:   "zero radius",
			sphere: NewSphere(core.NewVec3(0, 0, -1), 0, mat),
			ray:    core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
		},
		{
			name:   "negative radius",
			sphere: NewSphere(core.NewVec3(0, 0, -1), -0.5, mat),
			ray:    core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, isHit := tt.sphere.Hit(tt.ray, defaultRange); isHit {
				t.Error("Expected degenerate input to miss")
			}
		})
	}
}

func TestSphere_Hit_AttachesSharedMaterial(t *testing.T) {
	shared := material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)
	a := NewSphere(core.NewVec3(0, 0, -2), 0.5, shared)
	b := NewSphere(core.NewVec3(0, 0, 2), 0.5, shared)

	hitA, _ := a.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), defaultRange)
	hitB, _ := b.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), defaultRange)

	if hitA.Material != material.Material(shared) || hitB.Material != material.Material(shared) {
		t.Error("Both spheres should reference the same material instance")
	}
}

func TestSphere_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sphere  *Sphere
		wantErr bool
	}{
		{"valid", NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDielectric(1.5)), false},
		{"zero radius", NewSphere(core.NewVec3(0, 0, 0), 0, material.NewDielectric(1.5)), true},
		{"no material", NewSphere(core.NewVec3(0, 0, 0), 1, nil), true},
		{"bad material", NewSphere(core.NewVec3(0, 0, 0), 1, material.NewDielectric(0)), true},
		{"nan center", NewSphere(core.NewVec3(math.NaN(), 0, 0), 1, material.NewDielectric(1.5)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sphere.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
