package gen

import (
	"math/rand"

	"safecheck/pkg/core"
)

const (
	defaultFloatMin = -1000.0
	defaultFloatMax = 1000.0
)

// Float generates bounded random floats in [Min, Max).
type Float struct {
	Min float64
	Max float64
}

func (Float) Name() string {
	return "float"
}

func (Float) Kind() core.Kind {
	return core.KindFloat
}

func (g Float) Generate(r *rand.Rand) any {
	min, max := g.Min, g.Max
	if min >= max {
		min, max = defaultFloatMin, defaultFloatMax
	}
	return min + r.Float64()*(max-min)
}
