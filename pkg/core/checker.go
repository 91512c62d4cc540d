package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"time"
)

// Checker runs randomized trials against a single target. Trials run
// sequentially and the first failure settles the verdict unless
// ContinueOnFail is set.
type Checker struct {
	Target         Target
	Extractor      Extractor
	Generators     []Generator
	Trials         int
	Seed           int64
	ContinueOnFail bool
	RecordTrials   bool
	Corpus         CounterexampleStore
	Progress       func(completed, total int)
}

// Run executes the trial loop and returns the per-target result.
// Configuration problems (missing generator, bad signature) are errors;
// failing trials are not — they produce an unsafe verdict.
func (c Checker) Run(ctx context.Context) (CheckResult, error) {
	if c.Target.Func == nil {
		return CheckResult{}, errors.New("checker: target function is required")
	}
	if c.Trials < 0 {
		return CheckResult{}, errors.New("checker: trials must be >= 0")
	}

	fn := reflect.ValueOf(c.Target.Func)
	if fn.Kind() != reflect.Func {
		return CheckResult{}, fmt.Errorf("checker: target %q is not a function", c.Target.Name)
	}
	fnType := fn.Type()
	if fnType.NumIn() != 1 {
		return CheckResult{}, fmt.Errorf("checker: target %q has %d parameters, want exactly 1", c.Target.Name, fnType.NumIn())
	}
	if fnType.NumOut() != 1 {
		return CheckResult{}, fmt.Errorf("checker: target %q has %d results, want exactly 1", c.Target.Name, fnType.NumOut())
	}

	var sig Signature
	if c.Target.Signature != nil {
		sig = *c.Target.Signature
	} else {
		if c.Extractor == nil {
			return CheckResult{}, fmt.Errorf("checker: target %q has no declared signature and no extractor is set", c.Target.Name)
		}
		extracted, err := c.Extractor.Extract(c.Target.Func)
		if err != nil {
			return CheckResult{}, err
		}
		sig = extracted
	}

	gen, err := lookupGenerator(c.Generators, sig.Input.Kind)
	if err != nil {
		return CheckResult{}, fmt.Errorf("checker: target %q: %w", c.Target.Name, err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	started := time.Now()
	result := CheckResult{
		Target:    c.Target.Name,
		Signature: sig,
		Safe:      true,
	}

	record := func(trial Trial) {
		result.TrialsRun++
		if c.RecordTrials {
			result.Trials = append(result.Trials, trial)
		}
		if !trial.Passed {
			result.Safe = false
			if result.Counterexample == nil {
				copied := trial
				result.Counterexample = &copied
			}
			if c.Corpus != nil && !trial.Replayed {
				// A failed corpus write does not affect the verdict.
				_ = c.Corpus.Put(c.Target.Name, sig, trial.Input)
			}
		}
		if c.Progress != nil {
			c.Progress(result.TrialsRun, c.Trials)
		}
	}

	index := 0
	if c.Corpus != nil {
		if inputs, ok := c.Corpus.Get(c.Target.Name, sig); ok {
			for _, input := range inputs {
				if err := ctx.Err(); err != nil {
					return CheckResult{}, err
				}
				trial := runTrial(fn, fnType.In(0), sig.Output, index, input)
				trial.Replayed = true
				index++
				record(trial)
				if !trial.Passed && !c.ContinueOnFail {
					result.Duration = time.Since(started)
					return result, nil
				}
			}
		}
	}

	for i := 0; i < c.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return CheckResult{}, err
		}
		trial := runTrial(fn, fnType.In(0), sig.Output, index, gen.Generate(rng))
		index++
		record(trial)
		if !trial.Passed && !c.ContinueOnFail {
			break
		}
	}

	result.Duration = time.Since(started)
	return result, nil
}

func lookupGenerator(gens []Generator, kind Kind) (Generator, error) {
	if kind == KindInvalid {
		return nil, errors.New("input kind is unknown")
	}
	for _, g := range gens {
		if g.Kind() == kind {
			return g, nil
		}
	}
	return nil, fmt.Errorf("no generator for kind %q", kind)
}

// runTrial invokes the target once. Panics raised by the target are
// caught at the trial boundary and recorded on the trial.
func runTrial(fn reflect.Value, in reflect.Type, out Descriptor, index int, input any) (trial Trial) {
	start := time.Now()
	trial = Trial{Index: index, Input: input}
	defer func() {
		if r := recover(); r != nil {
			trial.Passed = false
			trial.Error = fmt.Sprintf("panic: %v", r)
		}
		trial.Duration = time.Since(start)
	}()

	arg := reflect.ValueOf(input)
	if !arg.IsValid() {
		trial.Error = "generated input is nil"
		return trial
	}
	if arg.Type() != in && in.Kind() != reflect.Interface {
		if !arg.Type().ConvertibleTo(in) {
			trial.Error = fmt.Sprintf("input %v (%T) is not convertible to parameter type %s", input, input, in)
			return trial
		}
		arg = arg.Convert(in)
	}

	output := fn.Call([]reflect.Value{arg})[0].Interface()
	trial.Output = output
	if !out.Conforms(output) {
		trial.Error = fmt.Sprintf("output %v (%T) does not conform to declared type %s", output, output, out.Name)
		return trial
	}
	trial.Passed = true
	return trial
}
