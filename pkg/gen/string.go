package gen

import (
	"math/rand"

	"safecheck/pkg/core"
)

const defaultStringMaxLen = 16

// String generates random lowercase ASCII strings up to MaxLen runes,
// including the empty string.
type String struct {
	MaxLen int
}

func (String) Name() string {
	return "string"
}

func (String) Kind() core.Kind {
	return core.KindString
}

func (g String) Generate(r *rand.Rand) any {
	maxLen := g.MaxLen
	if maxLen <= 0 {
		maxLen = defaultStringMaxLen
	}
	length := r.Intn(maxLen + 1)
	out := make([]byte, length)
	for i := range out {
		out[i] = byte('a' + r.Intn(26))
	}
	return string(out)
}
