// Package gen provides synthetic input generators keyed by descriptor
// kind. Default covers the two kinds the checker handles out of the
// box; All adds the rest of the enum for callers that opt in.
package gen

import "safecheck/pkg/core"

// Default returns the generators enabled without explicit opt-in:
// bounded integers and bounded floats.
func Default() []core.Generator {
	return []core.Generator{Int{}, Float{}}
}

// All returns one generator for every descriptor kind.
func All() []core.Generator {
	return []core.Generator{Int{}, Float{}, String{}, Bool{}}
}
