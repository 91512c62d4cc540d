// Package runlog persists completed check runs to a log directory,
// either as a single pretty-printed JSON file or as a zip archive with
// a header, per-target records, and a summary index.
package runlog

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"safecheck/pkg/core"

	"github.com/google/uuid"
)

const (
	logVersion = 1
	timeLayout = "2006-01-02T15:04:05-07:00"
)

type RunLog struct {
	Version int          `json:"version"`
	Status  string       `json:"status"`
	Run     RunSpec      `json:"run"`
	Metrics core.Metrics `json:"metrics"`
	Targets []TargetLog  `json:"targets,omitempty"`
}

type RunSpec struct {
	RunID       string            `json:"run_id"`
	Suite       string            `json:"suite"`
	Extractor   string            `json:"extractor"`
	Seed        int64             `json:"seed"`
	Trials      int               `json:"trials"`
	Targets     int               `json:"targets"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	StartedAt   string            `json:"started_at"`
	CompletedAt string            `json:"completed_at"`
}

type TargetLog struct {
	ID             string       `json:"id"`
	Target         string       `json:"target"`
	Input          string       `json:"input"`
	Output         string       `json:"output"`
	Safe           bool         `json:"safe"`
	TrialsRun      int          `json:"trials_run"`
	Counterexample *core.Trial  `json:"counterexample,omitempty"`
	Trials         []core.Trial `json:"trials,omitempty"`
	Error          string       `json:"error,omitempty"`
	TotalSeconds   float64      `json:"total_seconds"`
}

type TargetSummary struct {
	ID        string `json:"id"`
	Target    string `json:"target"`
	Safe      bool   `json:"safe"`
	TrialsRun int    `json:"trials_run"`
	Error     string `json:"error,omitempty"`
	Completed bool   `json:"completed"`
}

// FromReport converts a finished report into its persisted form.
func FromReport(report core.CheckReport) RunLog {
	status := "safe"
	targets := make([]TargetLog, 0, len(report.Results))
	for _, result := range report.Results {
		if !result.Safe || result.Error != "" {
			status = "unsafe"
		}
		targets = append(targets, TargetLog{
			ID:             uuid.NewString(),
			Target:         result.Target,
			Input:          result.Signature.Input.Name,
			Output:         result.Signature.Output.Name,
			Safe:           result.Safe,
			TrialsRun:      result.TrialsRun,
			Counterexample: result.Counterexample,
			Trials:         result.Trials,
			Error:          result.Error,
			TotalSeconds:   result.Duration.Seconds(),
		})
	}

	startedAt := report.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	completedAt := report.FinishedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}

	return RunLog{
		Version: logVersion,
		Status:  status,
		Run: RunSpec{
			RunID:       uuid.NewString(),
			Suite:       report.SuiteName,
			Extractor:   report.ExtractorName,
			Seed:        report.Seed,
			Trials:      report.Trials,
			Targets:     len(report.Results),
			Metadata:    report.Metadata,
			StartedAt:   startedAt.UTC().Format(timeLayout),
			CompletedAt: completedAt.UTC().Format(timeLayout),
		},
		Metrics: report.Metrics,
		Targets: targets,
	}
}

// WriteJSON writes the log as one pretty-printed JSON file and returns
// its path.
func WriteJSON(logDir string, log RunLog) (string, error) {
	if logDir == "" {
		return "", fmt.Errorf("runlog: logDir is required")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(logDir, buildLogFileName(log, "json"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return "", err
	}
	return path, nil
}

// WriteArchive writes the log as a zip archive: header.json without
// target records, summaries.json, and one file per target.
func WriteArchive(logDir string, log RunLog) (string, error) {
	if logDir == "" {
		return "", fmt.Errorf("runlog: logDir is required")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(logDir, buildLogFileName(log, "zip"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)

	header := log
	header.Targets = nil
	if err := writeZipJSON(zipWriter, "header.json", header); err != nil {
		zipWriter.Close()
		return "", err
	}
	if err := writeZipJSON(zipWriter, "summaries.json", buildSummaries(log.Targets)); err != nil {
		zipWriter.Close()
		return "", err
	}
	for idx, target := range log.Targets {
		name := fmt.Sprintf("targets/%d.json", idx+1)
		if err := writeZipJSON(zipWriter, name, target); err != nil {
			zipWriter.Close()
			return "", err
		}
	}

	if err := zipWriter.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// ReadJSON reads a log written by WriteJSON.
func ReadJSON(path string) (RunLog, error) {
	var log RunLog
	f, err := os.Open(path)
	if err != nil {
		return RunLog{}, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&log); err != nil {
		return RunLog{}, err
	}
	return log, nil
}

// ReadArchive reads a log written by WriteArchive.
func ReadArchive(path string) (RunLog, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return RunLog{}, err
	}
	defer r.Close()

	var log RunLog
	found := false
	for _, f := range r.File {
		if f.Name != "header.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return RunLog{}, err
		}
		err = json.NewDecoder(rc).Decode(&log)
		rc.Close()
		if err != nil {
			return RunLog{}, err
		}
		found = true
		break
	}
	if !found {
		return RunLog{}, fmt.Errorf("runlog: %s has no header.json", path)
	}

	for _, f := range r.File {
		if filepath.Dir(f.Name) != "targets" || filepath.Ext(f.Name) != ".json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return RunLog{}, err
		}
		var target TargetLog
		decodeErr := json.NewDecoder(rc).Decode(&target)
		rc.Close()
		if decodeErr != nil {
			return RunLog{}, decodeErr
		}
		log.Targets = append(log.Targets, target)
	}
	return log, nil
}

// UnsafeTargets returns the names of targets that did not pass, for
// re-checking a prior run.
func UnsafeTargets(log RunLog) []string {
	var out []string
	for _, target := range log.Targets {
		if !target.Safe || target.Error != "" {
			out = append(out, target.Target)
		}
	}
	return out
}

func buildSummaries(targets []TargetLog) []TargetSummary {
	summaries := make([]TargetSummary, 0, len(targets))
	for _, target := range targets {
		summaries = append(summaries, TargetSummary{
			ID:        target.ID,
			Target:    target.Target,
			Safe:      target.Safe,
			TrialsRun: target.TrialsRun,
			Error:     target.Error,
			Completed: target.Error == "",
		})
	}
	return summaries
}

func writeZipJSON(writer *zip.Writer, name string, data any) error {
	entry, err := writer.Create(name)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(entry)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func buildLogFileName(log RunLog, ext string) string {
	timestamp := time.Now().Format("2006-01-02T15-04-05")
	suite := sanitizeName(log.Run.Suite)
	if suite == "" {
		suite = "suite"
	}
	return fmt.Sprintf("%s_%s.%s", timestamp, suite, ext)
}

func sanitizeName(input string) string {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			out = append(out, r)
		}
	}
	return string(out)
}
