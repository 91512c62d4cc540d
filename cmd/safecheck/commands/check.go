package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"safecheck/pkg/core"
	"safecheck/pkg/corpus"
	"safecheck/pkg/examples"
	"safecheck/pkg/gen"
	"safecheck/pkg/reporter"
	"safecheck/pkg/runlog"
	"safecheck/pkg/signature"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCheckCommand() *cobra.Command {
	var (
		targetNames    string
		trials         int
		seed           int64
		workers        int
		format         string
		outputPath     string
		generators     string
		continueOnFail bool
		recordTrials   bool
		corpusDir      string
		logDir         string
		logFormat      string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run randomized safety checks against the built-in targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			trialCount := resolveInt(trials, appConfig.Trials, 100)
			workerCount := resolveInt(workers, appConfig.Workers, 1)
			seedResolved := seed
			if seedResolved == 0 {
				seedResolved = appConfig.Seed
			}
			formatResolved := resolveString(format, appConfig.Format)
			if formatResolved == "" {
				formatResolved = reporter.FormatTable
			}
			outputResolved := resolveString(outputPath, appConfig.Output)
			generatorsResolved := resolveString(generators, appConfig.Generators)
			if generatorsResolved == "" {
				generatorsResolved = "default"
			}
			corpusResolved := resolveString(corpusDir, appConfig.CorpusDir)
			logDirResolved := resolveString(logDir, appConfig.LogDir)
			logFormatResolved := resolveString(logFormat, appConfig.LogFormat)
			if logFormatResolved == "" {
				logFormatResolved = "none"
			}

			targets, err := resolveTargets(targetNames)
			if err != nil {
				return err
			}

			gens, err := buildGenerators(generatorsResolved)
			if err != nil {
				return err
			}

			var store core.CounterexampleStore
			if corpusResolved != "" {
				c, err := corpus.New(corpusResolved, 0)
				if err != nil {
					return err
				}
				store = c
			}

			logger.Debug("resolved check run",
				zap.Int("targets", len(targets)),
				zap.Int("trials", trialCount),
				zap.Int("workers", workerCount),
				zap.String("generators", generatorsResolved),
			)

			progress := newProgressBar(progressWriter(cmd), len(targets))
			suite := core.Suite{
				Name:           "builtin",
				Targets:        targets,
				Extractor:      signature.ReflectExtractor{},
				Generators:     gens,
				Trials:         trialCount,
				Seed:           seedResolved,
				Workers:        workerCount,
				ContinueOnFail: continueOnFail || appConfig.ContinueOnFail,
				RecordTrials:   recordTrials || appConfig.RecordTrials,
				Corpus:         store,
				Progress: func(completed, total int) {
					progress.Update(completed)
				},
			}

			report, err := suite.Run(context.Background())
			if err != nil {
				return err
			}
			if report.Metadata == nil {
				report.Metadata = map[string]string{}
			}
			report.Metadata["generators"] = generatorsResolved

			writer := io.Writer(os.Stdout)
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}

			rep, err := buildReporter(formatResolved, writer)
			if err != nil {
				return err
			}
			if err := rep.Report(report); err != nil {
				return err
			}

			if logFormatResolved != "none" {
				if logDirResolved == "" {
					logDirResolved = "./logs"
				}
				if err := writeRunLog(logFormatResolved, logDirResolved, report); err != nil {
					return err
				}
			}

			if unsafe := report.Metrics.TotalTargets - report.Metrics.SafeTargets; unsafe > 0 {
				return fmt.Errorf("%d of %d targets are unsafe", unsafe, report.Metrics.TotalTargets)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetNames, "targets", "", "comma-separated target names (default: all built-in)")
	cmd.Flags().IntVar(&trials, "trials", 0, "trials per target")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of workers")
	cmd.Flags().StringVar(&format, "format", "", "output format (table, json, html, markdown, csv)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file path")
	cmd.Flags().StringVar(&generators, "generators", "", "generator set (default, all)")
	cmd.Flags().BoolVar(&continueOnFail, "continue-on-fail", false, "run all trials instead of stopping at the first failure")
	cmd.Flags().BoolVar(&recordTrials, "record-trials", false, "retain every trial record in the report")
	cmd.Flags().StringVar(&corpusDir, "corpus-dir", "", "counterexample corpus directory (empty = disabled)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for run logs")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "run log format (json, archive, none)")

	return cmd
}

func resolveTargets(names string) ([]core.Target, error) {
	if names == "" {
		return examples.Targets(), nil
	}
	var targets []core.Target
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		target, ok := examples.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown target: %s", name)
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func buildGenerators(set string) ([]core.Generator, error) {
	switch set {
	case "default":
		return gen.Default(), nil
	case "all":
		return gen.All(), nil
	default:
		return nil, fmt.Errorf("unknown generator set: %s", set)
	}
}

func buildReporter(format string, writer io.Writer) (reporter.Reporter, error) {
	switch format {
	case reporter.FormatJSON:
		return reporter.JSONReporter{Writer: writer, Pretty: true}, nil
	case reporter.FormatTable:
		return reporter.TableReporter{Writer: writer}, nil
	case reporter.FormatHTML:
		return reporter.HTMLReporter{Writer: writer}, nil
	case reporter.FormatMarkdown:
		return reporter.MarkdownReporter{Writer: writer}, nil
	case reporter.FormatCSV:
		return reporter.CSVReporter{Writer: writer}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func writeRunLog(format string, logDir string, report core.CheckReport) error {
	switch format {
	case "json":
		log := runlog.FromReport(report)
		_, err := runlog.WriteJSON(logDir, log)
		return err
	case "archive":
		log := runlog.FromReport(report)
		_, err := runlog.WriteArchive(logDir, log)
		return err
	case "none":
		return nil
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
}

type progressBar struct {
	writer io.Writer
	total  int
	start  time.Time
	isTTY  bool
}

func newProgressBar(writer io.Writer, total int) *progressBar {
	return &progressBar{
		writer: writer,
		total:  total,
		start:  time.Now(),
		isTTY:  isTerminal(writer),
	}
}

func (p *progressBar) Update(completed int) {
	width := 30
	if p.total <= 0 {
		return
	}

	ratio := float64(completed) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))

	bar := strings.Repeat("=", filled) + strings.Repeat(".", width-filled)
	percent := int(ratio * 100)
	elapsed := time.Since(p.start).Truncate(time.Second)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	line := fmt.Sprintf("[%s] %3d%% (%d/%d) %s", barStyle.Render(bar), percent, completed, p.total, elapsed)
	if p.isTTY {
		fmt.Fprintf(p.writer, "\r%s", line)
	} else {
		fmt.Fprintf(p.writer, "%s\n", line)
	}

	if completed >= p.total {
		fmt.Fprintln(p.writer)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func progressWriter(cmd *cobra.Command) io.Writer {
	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()

	if isTerminal(stderr) {
		return stderr
	}
	if isTerminal(stdout) {
		return stdout
	}
	return stderr
}

func resolveString(value string, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func resolveInt(value int, fallback int, defaultValue int) int {
	if value > 0 {
		return value
	}
	if fallback > 0 {
		return fallback
	}
	return defaultValue
}
