package reporter

import (
	"fmt"
	"io"

	"safecheck/pkg/core"

	"github.com/olekukonko/tablewriter"
)

type TableReporter struct {
	Writer io.Writer
}

func (r TableReporter) Report(report core.CheckReport) error {
	summary := tablewriter.NewWriter(r.Writer)
	summary.Header([]string{"Metric", "Value"})
	summary.Append([]string{"Total targets", fmt.Sprintf("%d", report.Metrics.TotalTargets)})
	summary.Append([]string{"Safe targets", fmt.Sprintf("%d", report.Metrics.SafeTargets)})
	summary.Append([]string{"Safe rate", fmt.Sprintf("%.2f", report.Metrics.SafeRate)})
	summary.Append([]string{"Total trials", fmt.Sprintf("%d", report.Metrics.TotalTrials)})
	summary.Append([]string{"Avg duration", report.Metrics.AvgDuration.String()})
	summary.Append([]string{"P95 duration", report.Metrics.P95Duration.String()})
	summary.Render()

	targets := tablewriter.NewWriter(r.Writer)
	targets.Header([]string{"Target", "Signature", "Verdict", "Trials", "Counterexample", "Error"})
	for _, result := range report.Results {
		targets.Append([]string{
			result.Target,
			result.Signature.String(),
			verdict(result),
			fmt.Sprintf("%d", result.TrialsRun),
			counterexample(result),
			result.Error,
		})
	}
	targets.Render()
	return nil
}
