package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Point camera is looking from
	LookAt        core.Vec3 // Point camera is looking at
	Up            core.Vec3 // Camera-relative "up" direction
	Width         int       // Rendered image width in pixels
	AspectRatio   float64   // Ratio of image width over height
	VFov          float64   // Vertical field of view in degrees
	DefocusAngle  float64   // Variation angle of rays through each pixel, in degrees (0 = pinhole)
	FocusDistance float64   // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns the camera used when a scene does not supply one
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          90,
		DefocusAngle:  0,
		FocusDistance: 1,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied.
// Zero fields count as unset; callers that need an explicit zero assign the field directly.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Validate reports every parameter that would produce a degenerate camera
func (c CameraConfig) Validate() error {
	var errs []error

	if c.Width < 1 {
		errs = append(errs, fmt.Errorf("width must be at least 1, got %d", c.Width))
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		errs = append(errs, fmt.Errorf("aspect ratio must be positive and finite, got %f", c.AspectRatio))
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		errs = append(errs, fmt.Errorf("vertical field of view must be in (0, 180) degrees, got %f", c.VFov))
	}
	if !(c.DefocusAngle >= 0 && c.DefocusAngle < 180) {
		errs = append(errs, fmt.Errorf("defocus angle must be in [0, 180) degrees, got %f", c.DefocusAngle))
	}
	if !(c.FocusDistance > 0) || math.IsInf(c.FocusDistance, 0) {
		errs = append(errs, fmt.Errorf("focus distance must be positive and finite, got %f", c.FocusDistance))
	}

	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		errs = append(errs, errors.New("look-from and look-at must be distinct points"))
	} else if c.Up.Cross(view).NearZero() {
		errs = append(errs, fmt.Errorf("up vector %v must not be parallel to the view direction", c.Up))
	}

	return errors.Join(errs...)
}

// Camera generates rays for rendering. All fields are derived once in NewCamera.
type Camera struct {
	config CameraConfig

	imageHeight  int       // Rendered image height
	center       core.Vec3 // Camera center
	pixel00Loc   core.Vec3 // Location of pixel 0, 0
	pixelDeltaU  core.Vec3 // Offset to pixel to the right
	pixelDeltaV  core.Vec3 // Offset to pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera config: %w", err)
	}

	imageHeight := max(1, int(float64(config.Width)/config.AspectRatio))
	center := config.LookFrom

	// Determine viewport dimensions
	theta := degreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * (float64(config.Width) / float64(imageHeight))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(config.Width))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	// Location of the upper left pixel
	viewportUpperLeft := center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	// Camera defocus disk basis vectors
	defocusRadius := config.FocusDistance * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:       config,
		imageHeight:  imageHeight,
		center:       center,
		pixel00Loc:   pixel00Loc,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		u:            u,
		v:            v,
		w:            w,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}, nil
}

// GetRay returns a ray toward a random point inside pixel (i, j).
// The origin is the camera center, or a point on the defocus disk when DefocusAngle > 0.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the derived image height in pixels
func (c *Camera) Height() int {
	return c.imageHeight
}

// GetCameraForward returns the direction the camera looks along
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// sampleSquare returns a random offset in the [-0.5, 0.5) unit square
func sampleSquare(sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	return core.NewVec2(s.X-0.5, s.Y-0.5)
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
