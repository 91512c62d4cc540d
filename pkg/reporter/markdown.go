package reporter

import (
	"fmt"
	"io"

	"safecheck/pkg/core"
)

type MarkdownReporter struct {
	Writer io.Writer
}

func (r MarkdownReporter) Report(report core.CheckReport) error {
	if _, err := fmt.Fprintf(r.Writer, "# Safecheck Report\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "- Suite: %s\n- Extractor: %s\n- Seed: %d\n- Trials per target: %d\n\n",
		report.SuiteName, report.ExtractorName, report.Seed, report.Trials); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.Writer, "## Summary\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Metric | Value |\n|---|---|\n"); err != nil {
		return err
	}
	lines := []struct {
		Name  string
		Value string
	}{
		{"Total targets", fmt.Sprintf("%d", report.Metrics.TotalTargets)},
		{"Safe targets", fmt.Sprintf("%d", report.Metrics.SafeTargets)},
		{"Safe rate", fmt.Sprintf("%.2f", report.Metrics.SafeRate)},
		{"Total trials", fmt.Sprintf("%d", report.Metrics.TotalTrials)},
		{"Avg duration", report.Metrics.AvgDuration.String()},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(r.Writer, "| %s | %s |\n", line.Name, line.Value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.Writer, "\n## Targets\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Target | Signature | Verdict | Trials | Counterexample | Error |\n|---|---|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, result := range report.Results {
		if _, err := fmt.Fprintf(
			r.Writer,
			"| %s | %s | %s | %d | %s | %s |\n",
			result.Target,
			escapePipe(result.Signature.String()),
			verdict(result),
			result.TrialsRun,
			escapePipe(counterexample(result)),
			escapePipe(result.Error),
		); err != nil {
			return err
		}
	}
	return nil
}

func escapePipe(input string) string {
	if input == "" {
		return ""
	}
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if r == '|' {
			out = append(out, '\\', r)
		} else if r == '\n' || r == '\r' {
			out = append(out, ' ')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
