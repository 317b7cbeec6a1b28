package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// minHitDistance keeps rays from re-hitting the surface they just left
const minHitDistance = 0.001

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Seed for the render's random number stream
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}
}

// MergeSamplingConfig returns base with every non-zero field of override applied.
// Zero fields count as unset, as in MergeCameraConfig.
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	return result
}

// Validate reports sampling parameters that cannot produce an image
func (s SamplingConfig) Validate() error {
	var errs []error
	if s.SamplesPerPixel < 1 {
		errs = append(errs, fmt.Errorf("samples per pixel must be at least 1, got %d", s.SamplesPerPixel))
	}
	if s.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max depth must not be negative, got %d", s.MaxDepth))
	}
	return errors.Join(errs...)
}

// Background is the vertical sky gradient returned for rays that escape the scene
type Background struct {
	Bottom core.Vec3 // Color for rays pointing straight down
	Top    core.Vec3 // Color for rays pointing straight up
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the gradient color based on ray direction
func (b Background) Color(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)

	return b.Bottom.Multiply(1.0 - a).Add(b.Top.Multiply(a))
}

// ImageWriter receives the rendered image in row-major order, top row first
type ImageWriter interface {
	WriteHeader(width, height int) error
	WritePixel(color core.Vec3) error
}

// Raytracer handles the rendering process
type Raytracer struct {
	camera            *Camera
	world             geometry.Shape
	config            SamplingConfig
	background        Background
	pixelSamplesScale float64 // Color scale factor for a sum of pixel samples
	logger            core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards progress output.
func NewRaytracer(camera *Camera, world geometry.Shape, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	if camera == nil {
		return nil, errors.New("raytracer requires a camera")
	}
	if world == nil {
		return nil, errors.New("raytracer requires a world")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &Raytracer{
		camera:            camera,
		world:             world,
		config:            config,
		background:        DefaultBackground(),
		pixelSamplesScale: 1.0 / float64(config.SamplesPerPixel),
		logger:            logger,
	}, nil
}

// SetBackground replaces the background gradient
func (rt *Raytracer) SetBackground(background Background) {
	rt.background = background
}

// Camera returns the raytracer's camera
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// RayColor returns the color carried back along r after at most depth bounces.
// It walks the path iteratively, multiplying attenuations into a running throughput.
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := rt.world.Hit(r, core.NewInterval(minHitDistance, math.Inf(1)))
		if !isHit {
			return throughput.MultiplyVec(rt.background.Color(r))
		}
		if hit.Material == nil {
			return core.Vec3{}
		}

		scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
		if !didScatter {
			// Material absorbed the ray
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		r = scatter.Scattered
	}

	// Bounce limit exceeded, no more light is gathered
	return core.Vec3{}
}

// SamplePixel averages SamplesPerPixel traced rays through pixel (i, j)
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := rt.camera.GetRay(i, j, sampler)
		ps.AddSample(rt.RayColor(ray, rt.config.MaxDepth, sampler))
	}
	return ps.ColorAccum.Multiply(rt.pixelSamplesScale)
}

// Render traces every pixel and streams the result to out.
// onScanline, if not nil, is called after each completed row.
// The context is checked once per row.
func (rt *Raytracer) Render(ctx context.Context, out ImageWriter, onScanline func(done, total int)) (RenderStats, error) {
	startTime := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	sampler := core.NewSeededSampler(rt.config.Seed)

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
	}

	if err := out.WriteHeader(width, height); err != nil {
		return stats, fmt.Errorf("writing image header: %w", err)
	}

	for j := 0; j < height; j++ {
		if err := ctx.Err(); err != nil {
			rt.logger.Printf("\nRender cancelled with %d scanlines remaining\n", height-j)
			stats.Duration = time.Since(startTime)
			return stats, err
		}

		rt.logger.Printf("\rScanlines remaining: %d ", height-j)

		for i := 0; i < width; i++ {
			pixelColor := rt.SamplePixel(i, j, sampler)
			if err := out.WritePixel(pixelColor); err != nil {
				stats.Duration = time.Since(startTime)
				return stats, fmt.Errorf("writing pixel (%d, %d): %w", i, j, err)
			}
			stats.addPixel(rt.config.SamplesPerPixel)
		}

		if onScanline != nil {
			onScanline(j+1, height)
		}
	}

	rt.logger.Printf("\rDone.                 \n")
	stats.Duration = time.Since(startTime)
	return stats, nil
}
