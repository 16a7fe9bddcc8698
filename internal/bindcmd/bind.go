package bindcmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/newsbinder/internal/config"
	"github.com/lehigh-university-libraries/newsbinder/internal/report"
)

// NewBindCmd creates the bind command, the full rename, group and assemble run.
func NewBindCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "bind <input-dir> <output-dir>",
		Short: "Bind scanned newspaper pages into one PDF per issue",
		Long: `Bind reads scanned pages named like

  bib<code>_<YYYYMMDD>_<seq>_<seq>_<seq>.jpg

from the input directory, names each page after its newspaper using the lookup
table, and writes one PDF per capture date and newspaper to the output
directory, e.g. "2024-01-15 DAGENS NYHETER (2 sid).pdf".

Pages are moved into a working directory unless --keep-originals is set. The
working directory is removed after the run unless --keep-renamed is set, in
which case it is kept as a subdirectory of the output directory and can be
bound again later with "newsbinder assemble".`,
		Example: `  # Bind a day's scans using the newest title export in ./exports
  newsbinder bind ./scans ./pdf --lookup-dir ./exports

  # Copy instead of move, keep the renamed pages and overwrite existing PDFs
  newsbinder bind ./scans ./pdf --lookup titles.csv --keep-originals --keep-renamed --on-conflict overwrite

  # Write a YAML report of the run
  newsbinder bind ./scans ./pdf --lookup titles.parquet --report run.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(args[0], args[1])
			if err != nil {
				return err
			}
			if err := cfg.ValidatePaths(); err != nil {
				return err
			}
			return executeBind(cmd.Context(), cmd, &f, cfg)
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&f.keepOriginals, "keep-originals", false, "Copy scans instead of moving them")
	cmd.Flags().BoolVar(&f.keepRenamed, "keep-renamed", false, "Keep the renamed pages in a subdirectory of the output directory")
	cmd.Flags().StringVar(&f.workspaceName, "workspace-name", "", "Name of the kept working directory (default \"renamed\")")

	return cmd
}

func executeBind(ctx context.Context, cmd *cobra.Command, f *runFlags, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := newSession(ctx, cmd, f, cfg, true)
	if err != nil {
		return err
	}

	s.logger.Info("Starting bind", "input", cfg.InputDir, "output", cfg.OutputDir)
	res, err := s.pipe.Start(ctx).Wait()

	rc := report.RunConfig{InputDir: cfg.InputDir, OutputDir: cfg.OutputDir}
	if res != nil {
		rc.WorkspaceDir = res.WorkspaceDir
	}
	return s.finish(res, err, rc)
}
