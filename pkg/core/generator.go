package core

import "math/rand"

// Generator produces synthetic inputs for one kind of declared type.
type Generator interface {
	Name() string
	Kind() Kind
	Generate(r *rand.Rand) any
}
