package material

import (
	"errors"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Mix represents a material that probabilistically chooses between two materials
type Mix struct {
	Material1 Material
	Material2 Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 Material, ratio float64) *Mix {
	// Clamp ratio to valid range
	ratio = math.Max(0.0, math.Min(ratio, 1.0))

	return &Mix{
		Material1: material1,
		Material2: material2,
		Ratio:     ratio,
	}
}

// Scatter implements the Material interface for mix material
func (m *Mix) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Choose material based on ratio
	if sampler.Get1D() < m.Ratio {
		return m.Material2.Scatter(rayIn, hit, sampler)
	}
	return m.Material1.Scatter(rayIn, hit, sampler)
}

// Validate checks both components
func (m *Mix) Validate() error {
	if m.Material1 == nil || m.Material2 == nil {
		return errors.New("mix requires two materials")
	}
	if math.IsNaN(m.Ratio) {
		return errors.New("mix ratio is NaN")
	}
	return errors.Join(validate(m.Material1), validate(m.Material2))
}

// validate runs mat's Validate method when it has one
func validate(mat Material) error {
	if v, ok := mat.(Validator); ok {
		return v.Validate()
	}
	return nil
}
