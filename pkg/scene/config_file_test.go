package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestParseConfig(t *testing.T) {
	input := `{
		"scene": "three-spheres",
		"camera": {"lookFrom": [1, 2, 3], "width": 320, "vfov": 35},
		"sampling": {"samplesPerPixel": 8, "seed": 99}
	}`

	config, err := ParseConfig(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if config.Scene != "three-spheres" {
		t.Errorf("Expected scene three-spheres, got %q", config.Scene)
	}
	if config.Camera.LookAt != nil || config.Camera.AspectRatio != nil || config.Sampling.MaxDepth != nil {
		t.Errorf("Expected omitted fields to stay unset, got %+v", config)
	}
	if seed, ok := config.Seed(); !ok || seed != 99 {
		t.Errorf("Expected seed 99, got %d (set %v)", seed, ok)
	}

	s := NewThreeSpheresScene()
	config.Apply(s)
	camera := s.CameraConfig
	if camera.LookFrom != core.NewVec3(1, 2, 3) || camera.Width != 320 || camera.VFov != 35 {
		t.Errorf("Unexpected camera after Apply %+v", camera)
	}
	if camera.LookAt != core.NewVec3(0, 0, -1) || camera.DefocusAngle != 10 {
		t.Errorf("Expected omitted camera fields to keep scene values, got %+v", camera)
	}
	if s.SamplingConfig.SamplesPerPixel != 8 || s.SamplingConfig.MaxDepth != 50 {
		t.Errorf("Unexpected sampling after Apply %+v", s.SamplingConfig)
	}
	if s.SamplingConfig.Seed != 42 {
		t.Errorf("Apply must leave the seed to Create, got %d", s.SamplingConfig.Seed)
	}
}

func TestFileConfig_ApplyExplicitZeros(t *testing.T) {
	config, err := ParseConfig(strings.NewReader(`{"camera": {"lookAt": [0, 0, 0], "defocusAngle": 0}, "sampling": {"maxDepth": 0}}`))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	s := NewThreeSpheresScene()
	config.Apply(s)
	if s.CameraConfig.LookAt != (core.Vec3{}) {
		t.Errorf("Expected lookAt at the origin, got %v", s.CameraConfig.LookAt)
	}
	if s.CameraConfig.DefocusAngle != 0 {
		t.Errorf("Expected a pinhole camera, got defocus angle %f", s.CameraConfig.DefocusAngle)
	}
	if s.SamplingConfig.MaxDepth != 0 {
		t.Errorf("Expected max depth 0, got %d", s.SamplingConfig.MaxDepth)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Scene with explicit zeros should still validate: %v", err)
	}
}

func TestFileConfig_SeedUnset(t *testing.T) {
	config, err := ParseConfig(strings.NewReader(`{"sampling": {"samplesPerPixel": 2}}`))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if _, ok := config.Seed(); ok {
		t.Error("Expected no seed when the file omits it")
	}

	config, err = ParseConfig(strings.NewReader(`{"sampling": {"seed": 0}}`))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if seed, ok := config.Seed(); !ok || seed != 0 {
		t.Errorf("Expected explicit seed 0, got %d (set %v)", seed, ok)
	}
}

func TestParseConfig_RejectsUnknownFields(t *testing.T) {
	if _, err := ParseConfig(strings.NewReader(`{"camera": {"aperture": 2}}`)); err == nil {
		t.Error("Expected error for unknown field")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.json")
	if err := os.WriteFile(path, []byte(`{"sampling": {"maxDepth": 3}}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}

	s := NewSingleSphereScene()
	config.Apply(s)
	if s.SamplingConfig.MaxDepth != 3 || s.SamplingConfig.SamplesPerPixel != 100 {
		t.Errorf("Unexpected sampling after Apply %+v", s.SamplingConfig)
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for a missing file")
	}
}
