// Package bindcmd holds the bodies of the newsbinder commands.
package bindcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/newsbinder/internal/config"
	"github.com/lehigh-university-libraries/newsbinder/internal/conflict"
	"github.com/lehigh-university-libraries/newsbinder/internal/logging"
	"github.com/lehigh-university-libraries/newsbinder/internal/lookup"
	"github.com/lehigh-university-libraries/newsbinder/internal/pipeline"
	"github.com/lehigh-university-libraries/newsbinder/internal/progress"
	"github.com/lehigh-university-libraries/newsbinder/internal/report"
	"github.com/lehigh-university-libraries/newsbinder/internal/ui"
)

// runFlags are shared by the commands that write documents.
type runFlags struct {
	configPath    string
	lookupFile    string
	lookupDir     string
	lookupPattern string
	keepOriginals bool
	keepRenamed   bool
	workspaceName string
	onConflict    string
	largeGroup    int
	reportPath    string
	verbose       bool
	logFile       string
	noProgress    bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&f.lookupFile, "lookup", "", "Lookup table mapping catalog codes to titles (.csv, .parquet, .yaml)")
	cmd.Flags().StringVar(&f.lookupDir, "lookup-dir", "", "Directory to search for the newest lookup table")
	cmd.Flags().StringVar(&f.lookupPattern, "lookup-pattern", "", "Glob used with --lookup-dir (default \""+lookup.DefaultPattern+"\")")
	cmd.Flags().StringVar(&f.onConflict, "on-conflict", "", "What to do with existing documents: ask, overwrite, skip or cancel (default \"ask\")")
	cmd.Flags().IntVar(&f.largeGroup, "large-group", 0, "Report per-page progress for groups with more pages than this")
	cmd.Flags().StringVar(&f.reportPath, "report", "", "Write a YAML run report to this path")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Verbose logging")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "Also write logs to this file")
	cmd.Flags().BoolVar(&f.noProgress, "no-progress", false, "Hide the progress bar")
}

// loadConfig layers flags over the config file and environment.
func (f *runFlags) loadConfig(inputDir, outputDir string) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	overlay := &config.Config{
		InputDir:      inputDir,
		OutputDir:     outputDir,
		LookupFile:    f.lookupFile,
		LookupDir:     f.lookupDir,
		LookupPattern: f.lookupPattern,
		KeepOriginals: f.keepOriginals,
		KeepRenamed:   f.keepRenamed,
		WorkspaceName: f.workspaceName,
		OnConflict:    f.onConflict,
		LargeGroup:    f.largeGroup,
		Report:        f.reportPath,
		LogFile:       f.logFile,
	}
	if f.verbose {
		overlay.LogLevel = "debug"
	}
	cfg.Merge(overlay)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadLookup finds and loads the lookup table named by cfg.
func loadLookup(cfg *config.Config) (*lookup.Table, error) {
	path := cfg.LookupFile
	if path == "" {
		if cfg.LookupDir == "" {
			return nil, fmt.Errorf("a lookup table is required: use --lookup or --lookup-dir")
		}
		found, err := lookup.FindLatest(cfg.LookupDir, cfg.LookupPattern)
		if err != nil {
			return nil, err
		}
		path = found
	}

	table, err := lookup.NewLoader(path).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load lookup table: %w", err)
	}
	slog.Info("Loaded lookup table", "path", path, "entries", table.Len())
	return table, nil
}

// session wires a pipeline to the terminal for one command.
type session struct {
	cfg    *config.Config
	table  *lookup.Table
	pipe   *pipeline.Pipeline
	bar    *ui.ProgressBar
	out    io.Writer
	logger *slog.Logger
	closer func() error
}

// newSession sets up logging and the pipeline. The lookup table is only
// loaded when needLookup is set; assembling a kept workspace does not use it.
func newSession(ctx context.Context, cmd *cobra.Command, f *runFlags, cfg *config.Config, needLookup bool) (*session, error) {
	logger, closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	var table *lookup.Table
	var provider lookup.Provider
	if needLookup {
		table, err = loadLookup(cfg)
		if err != nil {
			_ = closer()
			return nil, err
		}
		provider = table
	}

	s := &session{
		cfg:    cfg,
		table:  table,
		pipe:   pipeline.New(cfg.PipelineOptions(), provider, logger),
		out:    cmd.OutOrStdout(),
		logger: logger,
		closer: closer,
	}

	if !f.noProgress {
		s.bar = ui.NewProgressBar(cmd.ErrOrStderr(), "Starting")
		s.pipe.OnProgress(s.bar.Report)
		if table != nil {
			s.bar.Report(fmt.Sprintf("Loaded %d publications", table.Len()), progress.LookupLoaded)
		}
	}

	decide, err := conflict.ParsePolicy(cfg.OnConflict)
	if err != nil {
		_ = closer()
		return nil, err
	}
	if decide == nil {
		prompt := ui.NewConflictPrompt(ctx, cmd.InOrStdin(), cmd.ErrOrStderr())
		if s.bar != nil {
			prompt.BeforePrompt(s.bar.Clear)
		}
		decide = prompt.Decide
	}
	s.pipe.OnConflict(decide)

	return s, nil
}

// finish prints the summary and writes the report. A cancelled run is not an
// error.
func (s *session) finish(res *pipeline.Result, runErr error, rc report.RunConfig) error {
	defer func() { _ = s.closer() }()

	if s.bar != nil {
		s.bar.Finish()
	}
	if runErr != nil {
		return runErr
	}

	report.PrintSummary(s.out, res)
	if res.Cancelled {
		return nil
	}

	if s.cfg.Report != "" {
		if s.table != nil {
			rc.LookupTable = s.table.Source()
		}
		rc.KeepOriginals = s.cfg.KeepOriginals
		rc.KeepRenamed = s.cfg.KeepRenamed
		if err := report.SaveToYAML(s.cfg.Report, rc, res); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Report written to %s\n", s.cfg.Report)
	}
	return nil
}
