// Package examples holds the built-in demonstration targets the CLI
// checks by default.
package examples

import (
	"strconv"

	"safecheck/pkg/core"
)

// Triple returns its input added to itself twice.
func Triple(x int) int {
	return x + x + x
}

// Halve divides its input by two.
func Halve(x float64) float64 {
	return x / 2
}

// Abs returns the magnitude of its input.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// TruncatePositive converts positive inputs to an integer and returns
// non-positive inputs unchanged, so it violates its declared
// float -> integer contract on roughly half the input range.
func TruncatePositive(x float64) any {
	if x > 0 {
		return int(x)
	}
	return x
}

// ParseDigit panics on anything that is not a decimal number, which
// exercises panic capture at the trial boundary. Its input kind has no
// generator in the default registry.
func ParseDigit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Targets returns the targets checked by default. parse-digit is not
// among them: its input kind has no generator in the default registry,
// so it must be selected by name together with the full generator set.
func Targets() []core.Target {
	return []core.Target{
		{Name: "triple", Func: Triple},
		{Name: "halve", Func: Halve},
		{Name: "abs", Func: Abs},
		{Name: "truncate-positive", Func: TruncatePositive, Signature: &core.Signature{
			Input:  core.Descriptor{Name: "float64", Kind: core.KindFloat},
			Output: core.Descriptor{Name: "int", Kind: core.KindInteger},
		}},
	}
}

// AllTargets returns every built-in target, including the ones that
// need an explicit opt-in.
func AllTargets() []core.Target {
	return append(Targets(), core.Target{Name: "parse-digit", Func: ParseDigit})
}

// Lookup returns the built-in target with the given name.
func Lookup(name string) (core.Target, bool) {
	for _, target := range AllTargets() {
		if target.Name == name {
			return target, true
		}
	}
	return core.Target{}, false
}
