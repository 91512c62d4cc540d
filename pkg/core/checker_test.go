package core_test

import (
	"context"
	"math/rand"
	"testing"

	"safecheck/pkg/core"
	"safecheck/pkg/gen"
	"safecheck/pkg/signature"

	"github.com/stretchr/testify/require"
)

type stubGen struct {
	kind  core.Kind
	value any
}

func (stubGen) Name() string { return "stub" }

func (s stubGen) Kind() core.Kind { return s.kind }

func (s stubGen) Generate(_ *rand.Rand) any { return s.value }

type memStore struct {
	inputs []any
	puts   []any
}

func (m *memStore) Get(_ string, _ core.Signature) ([]any, bool) {
	return m.inputs, len(m.inputs) > 0
}

func (m *memStore) Put(_ string, _ core.Signature, input any) error {
	m.puts = append(m.puts, input)
	return nil
}

func triple(x int) int { return x + x + x }

func TestCheckerSafeTarget(t *testing.T) {
	checker := core.Checker{
		Target:     core.Target{Name: "triple", Func: triple},
		Extractor:  signature.ReflectExtractor{},
		Generators: gen.Default(),
		Trials:     25,
		Seed:       1,
	}

	result, err := checker.Run(context.Background())
	require.NoError(t, err)
	require.True(t, result.Safe)
	require.Equal(t, 25, result.TrialsRun)
	require.Nil(t, result.Counterexample)
	require.Equal(t, "int -> int", result.Signature.String())
}

func TestCheckerZeroTrials(t *testing.T) {
	checker := core.Checker{
		Target:     core.Target{Name: "triple", Func: triple},
		Extractor:  signature.ReflectExtractor{},
		Generators: gen.Default(),
		Trials:     0,
		Seed:       1,
	}

	result, err := checker.Run(context.Background())
	require.NoError(t, err)
	require.True(t, result.Safe)
	require.Equal(t, 0, result.TrialsRun)
}

func TestCheckerUnsafeOutputStopsAtFirstFailure(t *testing.T) {
	identity := func(x float64) any { return x }
	declared := &core.Signature{
		Input:  core.Descriptor{Name: "float64", Kind: core.KindFloat},
		Output: core.Descriptor{Name: "int", Kind: core.KindInteger},
	}

	checker := core.Checker{
		Target:     core.Target{Name: "identity", Func: identity, Signature: declared},
		Generators: gen.Default(),
		Trials:     50,
		Seed:       1,
	}

	result, err := checker.Run(context.Background())
	require.NoError(t, err)
	require.False(t, result.Safe)
	require.Equal(t, 1, result.TrialsRun)
	require.NotNil(t, result.Counterexample)
	require.Contains(t, result.Counterexample.Error, "does not conform")
}

func TestCheckerContinueOnFail(t *testing.T) {
	identity := func(x float64) any { return x }
	declared := &core.Signature{
		Input:  core.Descriptor{Name: "float64", Kind: core.KindFloat},
		Output: core.Descriptor{Name: "int", Kind: core.KindInteger},
	}

	checker := core.Checker{
		Target:         core.Target{Name: "identity", Func: identity, Signature: declared},
		Generators:     gen.Default(),
		Trials:         5,
		Seed:           1,
		ContinueOnFail: true,
		RecordTrials:   true,
	}

	result, err := checker.Run(context.Background())
	require.NoError(t, err)
	require.False(t, result.Safe)
	require.Equal(t, 5, result.TrialsRun)
	require.Len(t, result.Trials, 5)
}

func TestCheckerCapturesPanic(t *testing.T) {
	boom := func(x int) int { panic("boom") }

	checker := core.Checker{
		Target:     core.Target{Name: "boom", Func: boom},
		Extractor:  signature.ReflectExtractor{},
		Generators: gen.Default(),
		Trials:     10,
		Seed:       1,
	}

	result, err := checker.Run(context.Background())
	require.NoError(t, err)
	require.False(t, result.Safe)
	require.Equal(t, 1, result.TrialsRun)
	require.Contains(t, result.Counterexample.Error, "panic: boom")
}

func TestCheckerNoGeneratorForKind(t *testing.T) {
	length := func(s string) int { return len(s) }

	checker := core.Checker{
		Target:     core.Target{Name: "length", Func: length},
		Extractor:  signature.ReflectExtractor{},
		Generators: gen.Default(),
		Trials:     10,
	}

	_, err := checker.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no generator for kind")
}

func TestCheckerRejectsBadShapes(t *testing.T) {
	cases := map[string]any{
		"two parameters": func(a, b int) int { return a + b },
		"no parameters":  func() int { return 0 },
		"two results":    func(a int) (int, error) { return a, nil },
		"not a function": 42,
	}

	for name, fn := range cases {
		checker := core.Checker{
			Target:     core.Target{Name: name, Func: fn},
			Extractor:  signature.ReflectExtractor{},
			Generators: gen.Default(),
			Trials:     1,
		}
		_, err := checker.Run(context.Background())
		require.Error(t, err, name)
	}
}

func TestCheckerRecordsTrials(t *testing.T) {
	checker := core.Checker{
		Target:       core.Target{Name: "triple", Func: triple},
		Extractor:    signature.ReflectExtractor{},
		Generators:   []core.Generator{stubGen{kind: core.KindInteger, value: 4}},
		Trials:       3,
		Seed:         1,
		RecordTrials: true,
	}

	result, err := checker.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Trials, 3)
	require.Equal(t, 12, result.Trials[0].Output)
	require.True(t, result.Trials[0].Passed)
}

func TestCheckerReplaysCorpus(t *testing.T) {
	truncate := func(x float64) any {
		if x > 0 {
			return int(x)
		}
		return x
	}
	declared := &core.Signature{
		Input:  core.Descriptor{Name: "float64", Kind: core.KindFloat},
		Output: core.Descriptor{Name: "int", Kind: core.KindInteger},
	}
	store := &memStore{inputs: []any{float64(-3)}}

	checker := core.Checker{
		Target:       core.Target{Name: "truncate", Func: truncate, Signature: declared},
		Generators:   gen.Default(),
		Trials:       0,
		Seed:         1,
		RecordTrials: true,
		Corpus:       store,
	}

	result, err := checker.Run(context.Background())
	require.NoError(t, err)
	require.False(t, result.Safe)
	require.Equal(t, 1, result.TrialsRun)
	require.True(t, result.Trials[0].Replayed)
	require.Empty(t, store.puts, "replayed failures must not be re-recorded")
}

func TestCheckerRecordsNewCounterexample(t *testing.T) {
	identity := func(x float64) any { return x }
	declared := &core.Signature{
		Input:  core.Descriptor{Name: "float64", Kind: core.KindFloat},
		Output: core.Descriptor{Name: "int", Kind: core.KindInteger},
	}
	store := &memStore{}

	checker := core.Checker{
		Target:     core.Target{Name: "identity", Func: identity, Signature: declared},
		Generators: gen.Default(),
		Trials:     5,
		Seed:       1,
		Corpus:     store,
	}

	result, err := checker.Run(context.Background())
	require.NoError(t, err)
	require.False(t, result.Safe)
	require.Len(t, store.puts, 1)
	require.Equal(t, result.Counterexample.Input, store.puts[0])
}
