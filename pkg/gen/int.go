package gen

import (
	"math/rand"

	"safecheck/pkg/core"
)

const (
	defaultIntMin = -1000
	defaultIntMax = 1000
)

// Int generates bounded random integers in [Min, Max].
type Int struct {
	Min int64
	Max int64
}

func (Int) Name() string {
	return "int"
}

func (Int) Kind() core.Kind {
	return core.KindInteger
}

func (g Int) Generate(r *rand.Rand) any {
	min, max := g.Min, g.Max
	if min >= max {
		min, max = defaultIntMin, defaultIntMax
	}
	return int(min + r.Int63n(max-min+1))
}
