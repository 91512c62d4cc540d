package core

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"
)

// Kind is an enumerated type tag used to pick a generator and a
// conformance check for a descriptor.
type Kind string

const (
	KindInvalid Kind = ""
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindString  Kind = "string"
	KindBool    Kind = "bool"
)

// Descriptor describes a declared input or output type. Name holds the
// spelling used at the declaration site, which may be an alias; Type is
// the resolved runtime type when the descriptor came from reflection,
// and nil for source-extracted or hand-declared descriptors.
type Descriptor struct {
	Name string       `json:"name" yaml:"name"`
	Kind Kind         `json:"kind" yaml:"kind"`
	Type reflect.Type `json:"-" yaml:"-"`
}

// KindOf maps a runtime type onto a Kind tag.
func KindOf(t reflect.Type) (Kind, bool) {
	if t == nil {
		return KindInvalid, false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger, true
	case reflect.Float32, reflect.Float64:
		return KindFloat, true
	case reflect.String:
		return KindString, true
	case reflect.Bool:
		return KindBool, true
	}
	return KindInvalid, false
}

// DescriptorOf builds a descriptor from a resolved runtime type.
func DescriptorOf(t reflect.Type) (Descriptor, error) {
	kind, ok := KindOf(t)
	if !ok {
		return Descriptor{}, fmt.Errorf("core: unsupported type %s", t)
	}
	return Descriptor{Name: t.String(), Kind: kind, Type: t}, nil
}

// Conforms reports whether a runtime value is an instance of the
// described type. Descriptors with a resolved Type check assignability;
// kind-only descriptors check the value's kind tag.
func (d Descriptor) Conforms(value any) bool {
	vt := reflect.TypeOf(value)
	if vt == nil {
		return false
	}
	if d.Type != nil {
		return vt.AssignableTo(d.Type)
	}
	kind, ok := KindOf(vt)
	return ok && kind == d.Kind
}

// Signature is the ordered pair of declared input and output types.
type Signature struct {
	Input  Descriptor `json:"input" yaml:"input"`
	Output Descriptor `json:"output" yaml:"output"`
}

func (s Signature) String() string {
	return fmt.Sprintf("%s -> %s", s.Input.Name, s.Output.Name)
}

// Trial records one generate-invoke-check cycle.
type Trial struct {
	Index    int           `json:"index" yaml:"index"`
	Input    any           `json:"input" yaml:"input"`
	Output   any           `json:"output,omitempty" yaml:"output,omitempty"`
	Passed   bool          `json:"passed" yaml:"passed"`
	Replayed bool          `json:"replayed,omitempty" yaml:"replayed,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// CheckResult captures the verdict for one target.
type CheckResult struct {
	Target         string        `json:"target" yaml:"target"`
	Signature      Signature     `json:"signature" yaml:"signature"`
	Safe           bool          `json:"safe" yaml:"safe"`
	TrialsRun      int           `json:"trials_run" yaml:"trials_run"`
	Counterexample *Trial        `json:"counterexample,omitempty" yaml:"counterexample,omitempty"`
	Trials         []Trial       `json:"trials,omitempty" yaml:"trials,omitempty"`
	Error          string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration       time.Duration `json:"duration" yaml:"duration"`
}

// CheckReport summarizes a check run over a set of targets.
type CheckReport struct {
	SuiteName     string            `json:"suite_name" yaml:"suite_name"`
	ExtractorName string            `json:"extractor_name" yaml:"extractor_name"`
	Seed          int64             `json:"seed" yaml:"seed"`
	Trials        int               `json:"trials" yaml:"trials"`
	Metrics       Metrics           `json:"metrics" yaml:"metrics"`
	Results       []CheckResult     `json:"results" yaml:"results"`
	Metadata      map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	StartedAt     time.Time         `json:"started_at" yaml:"started_at"`
	FinishedAt    time.Time         `json:"finished_at" yaml:"finished_at"`
}

// Metrics aggregates check statistics.
type Metrics struct {
	TotalTargets int           `json:"total_targets" yaml:"total_targets"`
	SafeTargets  int           `json:"safe_targets" yaml:"safe_targets"`
	SafeRate     float64       `json:"safe_rate" yaml:"safe_rate"`
	TotalTrials  int           `json:"total_trials" yaml:"total_trials"`
	AvgDuration  time.Duration `json:"avg_duration" yaml:"avg_duration"`
	P50Duration  time.Duration `json:"p50_duration" yaml:"p50_duration"`
	P95Duration  time.Duration `json:"p95_duration" yaml:"p95_duration"`
	P99Duration  time.Duration `json:"p99_duration" yaml:"p99_duration"`
}

// CalculateMetrics aggregates per-target results into run metrics.
func CalculateMetrics(results []CheckResult) Metrics {
	if len(results) == 0 {
		return Metrics{}
	}

	durations := make([]time.Duration, 0, len(results))
	var safe, trials int
	for _, result := range results {
		durations = append(durations, result.Duration)
		trials += result.TrialsRun
		if result.Safe && result.Error == "" {
			safe++
		}
	}

	return Metrics{
		TotalTargets: len(results),
		SafeTargets:  safe,
		SafeRate:     float64(safe) / float64(len(results)),
		TotalTrials:  trials,
		AvgDuration:  averageDuration(durations),
		P50Duration:  percentileDuration(durations, 0.50),
		P95Duration:  percentileDuration(durations, 0.95),
		P99Duration:  percentileDuration(durations, 0.99),
	}
}

func averageDuration(values []time.Duration) time.Duration {
	if len(values) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range values {
		sum += v
	}
	return time.Duration(int64(sum) / int64(len(values)))
}

func percentileDuration(values []time.Duration, p float64) time.Duration {
	if len(values) == 0 {
		return 0
	}
	copied := make([]time.Duration, len(values))
	copy(copied, values)
	sort.Slice(copied, func(i, j int) bool { return copied[i] < copied[j] })

	if p <= 0 {
		return copied[0]
	}
	if p >= 1 {
		return copied[len(copied)-1]
	}

	index := p * float64(len(copied)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return copied[lower]
	}
	weight := index - float64(lower)
	lowerVal := float64(copied[lower])
	upperVal := float64(copied[upper])
	return time.Duration(lowerVal*(1-weight) + upperVal*weight)
}
