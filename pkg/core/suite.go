package core

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Suite checks a set of targets through a bounded worker pool. Each
// target's trial loop stays sequential; only targets run concurrently.
type Suite struct {
	Name           string
	Targets        []Target
	Extractor      Extractor
	Generators     []Generator
	Trials         int
	Seed           int64
	Workers        int
	ContinueOnFail bool
	RecordTrials   bool
	Corpus         CounterexampleStore
	Progress       func(completed, total int)
}

// Run checks every target and returns a report.
func (s Suite) Run(ctx context.Context) (CheckReport, error) {
	if len(s.Targets) == 0 {
		return CheckReport{}, errors.New("suite: at least one target is required")
	}
	if len(s.Generators) == 0 {
		return CheckReport{}, errors.New("suite: at least one generator is required")
	}

	workers := s.Workers
	if workers <= 0 {
		workers = 1
	}

	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	type job struct {
		index  int
		target Target
	}

	started := time.Now()
	jobCh := make(chan job)
	resultCh := make(chan CheckResult, workers)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for j := range jobCh {
			select {
			case <-ctx.Done():
				return
			default:
			}

			checker := Checker{
				Target:         j.target,
				Extractor:      s.Extractor,
				Generators:     s.Generators,
				Trials:         s.Trials,
				Seed:           seed + int64(j.index),
				ContinueOnFail: s.ContinueOnFail,
				RecordTrials:   s.RecordTrials,
				Corpus:         s.Corpus,
			}
			result, err := checker.Run(ctx)
			if err != nil {
				result = CheckResult{Target: j.target.Name, Error: err.Error()}
			}
			select {
			case resultCh <- result:
			case <-ctx.Done():
				return
			}
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}

	go func() {
		defer close(jobCh)
		for i, target := range s.Targets {
			select {
			case <-ctx.Done():
				return
			case jobCh <- job{index: i, target: target}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var results []CheckResult
	for {
		select {
		case <-ctx.Done():
			return CheckReport{}, ctx.Err()
		case result, ok := <-resultCh:
			if !ok {
				sort.Slice(results, func(i, j int) bool { return results[i].Target < results[j].Target })
				return CheckReport{
					SuiteName:     s.Name,
					ExtractorName: s.extractorName(),
					Seed:          seed,
					Trials:        s.Trials,
					Metrics:       CalculateMetrics(results),
					Results:       results,
					StartedAt:     started,
					FinishedAt:    time.Now(),
				}, nil
			}
			results = append(results, result)
			if s.Progress != nil {
				s.Progress(len(results), len(s.Targets))
			}
		}
	}
}

func (s Suite) extractorName() string {
	if s.Extractor != nil {
		return s.Extractor.Name()
	}
	return "declared"
}
