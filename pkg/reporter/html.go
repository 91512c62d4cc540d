package reporter

import (
	"html/template"
	"io"

	"safecheck/pkg/core"
)

type HTMLReporter struct {
	Writer io.Writer
	Title  string
}

func (r HTMLReporter) Report(report core.CheckReport) error {
	title := r.Title
	if title == "" {
		title = "Safecheck Report"
	}

	data := struct {
		Title  string
		Report core.CheckReport
	}{
		Title:  title,
		Report: report,
	}

	tpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"verdict":        verdict,
		"counterexample": counterexample,
	}).Parse(htmlTemplate))
	return tpl.Execute(r.Writer, data)
}

const htmlTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 24px; }
    table { border-collapse: collapse; width: 100%; margin-top: 16px; }
    th, td { border: 1px solid #ddd; padding: 8px; }
    th { background: #f5f5f5; text-align: left; }
    .meta { margin-bottom: 12px; }
    .unsafe { color: #b00020; font-weight: bold; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <div class="meta">
    <div><strong>Suite:</strong> {{ .Report.SuiteName }}</div>
    <div><strong>Extractor:</strong> {{ .Report.ExtractorName }}</div>
    <div><strong>Seed:</strong> {{ .Report.Seed }}</div>
  </div>
  <h2>Summary</h2>
  <table>
    <tr><th>Metric</th><th>Value</th></tr>
    <tr><td>Total targets</td><td>{{ .Report.Metrics.TotalTargets }}</td></tr>
    <tr><td>Safe targets</td><td>{{ .Report.Metrics.SafeTargets }}</td></tr>
    <tr><td>Safe rate</td><td>{{ printf "%.2f" .Report.Metrics.SafeRate }}</td></tr>
    <tr><td>Total trials</td><td>{{ .Report.Metrics.TotalTrials }}</td></tr>
    <tr><td>Avg duration</td><td>{{ .Report.Metrics.AvgDuration }}</td></tr>
  </table>
  <h2>Targets</h2>
  <table>
    <tr><th>Target</th><th>Signature</th><th>Verdict</th><th>Trials</th><th>Counterexample</th><th>Error</th></tr>
    {{ range .Report.Results }}
    <tr>
      <td>{{ .Target }}</td>
      <td>{{ .Signature }}</td>
      <td{{ if not .Safe }} class="unsafe"{{ end }}>{{ verdict . }}</td>
      <td>{{ .TrialsRun }}</td>
      <td>{{ counterexample . }}</td>
      <td>{{ .Error }}</td>
    </tr>
    {{ end }}
  </table>
</body>
</html>
`
