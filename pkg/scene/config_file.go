package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// FileConfig is the JSON render configuration accepted by -config.
// Omitted fields leave the scene's own values in place; a field that is
// present is applied even when it is zero.
type FileConfig struct {
	Scene    string             `json:"scene,omitempty"`
	Camera   CameraFileConfig   `json:"camera"`
	Sampling SamplingFileConfig `json:"sampling"`
}

// CameraFileConfig mirrors renderer.CameraConfig with vectors as [x, y, z] arrays
type CameraFileConfig struct {
	LookFrom      *[3]float64 `json:"lookFrom,omitempty"`
	LookAt        *[3]float64 `json:"lookAt,omitempty"`
	Up            *[3]float64 `json:"up,omitempty"`
	Width         *int        `json:"width,omitempty"`
	AspectRatio   *float64    `json:"aspectRatio,omitempty"`
	VFov          *float64    `json:"vfov,omitempty"`
	DefocusAngle  *float64    `json:"defocusAngle,omitempty"`
	FocusDistance *float64    `json:"focusDistance,omitempty"`
}

// SamplingFileConfig mirrors renderer.SamplingConfig
type SamplingFileConfig struct {
	SamplesPerPixel *int   `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int   `json:"maxDepth,omitempty"`
	Seed            *int64 `json:"seed,omitempty"`
}

// LoadConfigFile reads and parses a JSON render configuration
func LoadConfigFile(path string) (FileConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	config, err := ParseConfig(file)
	if err != nil {
		return FileConfig{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return config, nil
}

// ParseConfig decodes a JSON render configuration, rejecting unknown fields
func ParseConfig(r io.Reader) (FileConfig, error) {
	var config FileConfig
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		return FileConfig{}, err
	}
	return config, nil
}

// Seed returns the configured seed and whether one was given.
// The seed also populates the scene, so it has to be known before Create
// and is not applied by Apply.
func (c FileConfig) Seed() (int64, bool) {
	if c.Sampling.Seed == nil {
		return 0, false
	}
	return *c.Sampling.Seed, true
}

// Apply writes every camera and sampling field present in the file into s
func (c FileConfig) Apply(s *Scene) {
	camera := &s.CameraConfig
	setVec3(&camera.LookFrom, c.Camera.LookFrom)
	setVec3(&camera.LookAt, c.Camera.LookAt)
	setVec3(&camera.Up, c.Camera.Up)
	setValue(&camera.Width, c.Camera.Width)
	setValue(&camera.AspectRatio, c.Camera.AspectRatio)
	setValue(&camera.VFov, c.Camera.VFov)
	setValue(&camera.DefocusAngle, c.Camera.DefocusAngle)
	setValue(&camera.FocusDistance, c.Camera.FocusDistance)

	sampling := &s.SamplingConfig
	setValue(&sampling.SamplesPerPixel, c.Sampling.SamplesPerPixel)
	setValue(&sampling.MaxDepth, c.Sampling.MaxDepth)
}

func setValue[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setVec3(dst *core.Vec3, src *[3]float64) {
	if src != nil {
		*dst = core.NewVec3(src[0], src[1], src[2])
	}
}
