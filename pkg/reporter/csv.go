package reporter

import (
	"encoding/csv"
	"io"
	"strconv"

	"safecheck/pkg/core"
)

type CSVReporter struct {
	Writer io.Writer
}

func (r CSVReporter) Report(report core.CheckReport) error {
	writer := csv.NewWriter(r.Writer)
	header := []string{"target", "input", "output", "safe", "trials_run", "counterexample", "error", "duration_seconds"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, result := range report.Results {
		record := []string{
			result.Target,
			result.Signature.Input.Name,
			result.Signature.Output.Name,
			strconv.FormatBool(result.Safe),
			strconv.Itoa(result.TrialsRun),
			counterexample(result),
			result.Error,
			strconv.FormatFloat(result.Duration.Seconds(), 'f', 6, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
