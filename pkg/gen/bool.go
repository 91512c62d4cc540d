package gen

import (
	"math/rand"

	"safecheck/pkg/core"
)

// Bool generates fair random booleans.
type Bool struct{}

func (Bool) Name() string {
	return "bool"
}

func (Bool) Kind() core.Kind {
	return core.KindBool
}

func (Bool) Generate(r *rand.Rand) any {
	return r.Intn(2) == 1
}
