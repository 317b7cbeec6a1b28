package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// sphere is shorthand used by the built-in scenes
func sphere(center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	return geometry.NewSphere(center, radius, mat)
}

// NewThreeSpheresScene creates a diffuse, a hollow glass and a fuzzy metal sphere on a large ground sphere
func NewThreeSpheresScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		DefocusAngle:  10.0, // Strong depth of field blur
		FocusDistance: 3.4,
	}

	samplingConfig := renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}

	s := newScene(defaultCameraConfig, samplingConfig, cameraOverrides)

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.50)
	materialBubble := material.NewDielectric(1.00 / 1.50) // Air inside glass
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.World.Add(
		sphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround),
		sphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, materialCenter),
		sphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft),
		sphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, materialBubble),
		sphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight),
	)

	return s
}

// NewSingleSphereScene creates one gray diffuse sphere in front of a pinhole camera at the origin
func NewSingleSphereScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	samplingConfig := renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}

	s := newScene(renderer.DefaultCameraConfig(), samplingConfig, cameraOverrides)
	s.World.Add(sphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	return s
}

// NewMaterialsScene shows every material side by side: a glass-coated diffuse
// sphere between silver and gold metals, solid and hollow glass in front, and
// a half diffuse, half metal sphere
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the center sphere
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		DefocusAngle:  0.6,
		FocusDistance: 3.0,
	}

	samplingConfig := renderer.SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50, // Nested glass needs a lot of bounces
		Seed:            42,
	}

	s := newScene(defaultCameraConfig, samplingConfig, cameraOverrides)

	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)
	materialAir := material.NewDielectric(1.0 / 1.5)

	// Glass coating over a red diffuse base
	coatedRed := material.NewLayered(materialGlass, lambertianRed)
	// Satin: half the bounces are diffuse, half are a slightly fuzzy mirror
	satin := material.NewMix(material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7)), material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.1), 0.5)

	s.World.Add(
		sphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen),
		sphere(core.NewVec3(0, 0.5, -1), 0.5, coatedRed),
		sphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		sphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		sphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass),
		// Hollow glass shell with a blue sphere inside
		sphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass),
		sphere(core.NewVec3(-0.5, 0.25, -0.5), 0.24, materialAir),
		sphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue),
		sphere(core.NewVec3(0, 0.2, -0.3), 0.2, satin),
	)

	return s
}
