package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	World          *geometry.List // Objects in the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	Background     renderer.Background // Sky gradient for rays that escape the world
}

// newScene creates an empty scene with the default sky, applying the first
// camera override, if any, on top of cameraConfig
func newScene(cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	return &Scene{
		World:          geometry.NewList(),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		Background:     renderer.DefaultBackground(),
	}
}

// ApplyOverrides merges non-zero camera and sampling fields into the scene
func (s *Scene) ApplyOverrides(camera renderer.CameraConfig, sampling renderer.SamplingConfig) {
	s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, camera)
	s.SamplingConfig = renderer.MergeSamplingConfig(s.SamplingConfig, sampling)
}

// Validate checks the world, camera and sampling configuration together
func (s *Scene) Validate() error {
	var errs []error
	if s.World == nil {
		errs = append(errs, errors.New("scene has no world"))
	} else if err := s.World.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("world: %w", err))
	}
	if err := s.CameraConfig.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("sampling: %w", err))
	}
	return errors.Join(errs...)
}

// NewRaytracer validates the scene and builds a raytracer for it
func (s *Scene) NewRaytracer(logger core.Logger) (*renderer.Raytracer, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	camera, err := renderer.NewCamera(s.CameraConfig)
	if err != nil {
		return nil, err
	}

	rt, err := renderer.NewRaytracer(camera, s.World, s.SamplingConfig, logger)
	if err != nil {
		return nil, err
	}
	rt.SetBackground(s.Background)
	return rt, nil
}

// GetPrimitiveCount returns the total number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return countPrimitives(s.World)
}

// countPrimitives counts leaf shapes, descending into nested lists
func countPrimitives(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.List:
		count := 0
		for _, child := range obj.Shapes() {
			count += countPrimitives(child)
		}
		return count
	default:
		return 1
	}
}
