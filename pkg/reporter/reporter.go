package reporter

import (
	"fmt"

	"safecheck/pkg/core"
)

// Reporter writes a check report.
type Reporter interface {
	Report(report core.CheckReport) error
}

const (
	FormatJSON     = "json"
	FormatTable    = "table"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

func verdict(result core.CheckResult) string {
	if result.Error != "" {
		return "error"
	}
	if result.Safe {
		return "safe"
	}
	return "unsafe"
}

func counterexample(result core.CheckResult) string {
	if result.Counterexample == nil {
		return ""
	}
	ce := result.Counterexample
	if ce.Error != "" {
		return fmt.Sprintf("input=%v: %s", ce.Input, ce.Error)
	}
	return fmt.Sprintf("input=%v output=%v", ce.Input, ce.Output)
}
