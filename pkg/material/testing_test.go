package material

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// sequenceSampler replays fixed values so scatter decisions can be forced in tests
type sequenceSampler struct {
	values []float64
	draws  int
}

func newSequenceSampler(values ...float64) *sequenceSampler {
	return &sequenceSampler{values: values}
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.draws%len(s.values)]
	s.draws++
	return v
}

func (s *sequenceSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}
