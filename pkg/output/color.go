package output

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// intensity is the range gamma-corrected components are clamped to before scaling
var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma converts a linear component to gamma 2 space.
// Negative and NaN inputs map to 0.
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToByte converts one linear color component to a display byte in [0, 255]
func ToByte(linear float64) int {
	return int(256 * intensity.Clamp(linearToGamma(linear)))
}

// EncodeColor converts a linear pixel color to gamma-corrected byte components
func EncodeColor(c core.Vec3) (r, g, b int) {
	return ToByte(c.X), ToByte(c.Y), ToByte(c.Z)
}
