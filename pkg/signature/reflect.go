// Package signature extracts declared signatures from callables. The
// reflect extractor reads the resolved runtime type and therefore loses
// alias spellings; the source extractor parses the declaration site and
// preserves them. The two are intentionally non-equivalent.
package signature

import (
	"fmt"
	"reflect"

	"safecheck/pkg/core"
)

// ReflectExtractor reads a callable's signature from its runtime type.
type ReflectExtractor struct{}

func (ReflectExtractor) Name() string {
	return "reflect"
}

func (ReflectExtractor) Extract(fn any) (core.Signature, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return core.Signature{}, fmt.Errorf("signature: %T is not a function", fn)
	}
	if t.NumIn() != 1 {
		return core.Signature{}, fmt.Errorf("signature: function has %d parameters, want exactly 1", t.NumIn())
	}
	if t.NumOut() != 1 {
		return core.Signature{}, fmt.Errorf("signature: function has %d results, want exactly 1", t.NumOut())
	}

	input, err := core.DescriptorOf(t.In(0))
	if err != nil {
		return core.Signature{}, fmt.Errorf("signature: parameter: %w", err)
	}
	output, err := core.DescriptorOf(t.Out(0))
	if err != nil {
		return core.Signature{}, fmt.Errorf("signature: result: %w", err)
	}
	return core.Signature{Input: input, Output: output}, nil
}
