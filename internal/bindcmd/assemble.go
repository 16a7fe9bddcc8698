package bindcmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/newsbinder/internal/config"
	"github.com/lehigh-university-libraries/newsbinder/internal/report"
)

// NewAssembleCmd creates the assemble command, which binds a working directory
// kept by an earlier "bind --keep-renamed" run.
func NewAssembleCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "assemble <workspace-dir> <output-dir>",
		Short: "Bind pages already renamed by an earlier run",
		Long: `Assemble skips the rename step and groups the pages of an existing working
directory by the date and newspaper in their names. Use it after removing or replacing
bad pages in a directory kept with --keep-renamed.

The working directory is never modified.`,
		Example: `  # Rebuild the PDFs from a kept working directory
  newsbinder assemble ./pdf/renamed ./pdf --on-conflict overwrite`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig("", args[1])
			if err != nil {
				return err
			}
			return executeAssemble(cmd.Context(), cmd, &f, cfg, args[0])
		},
	}

	f.register(cmd)
	return cmd
}

func executeAssemble(ctx context.Context, cmd *cobra.Command, f *runFlags, cfg *config.Config, workspaceDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := newSession(ctx, cmd, f, cfg, false)
	if err != nil {
		return err
	}

	s.logger.Info("Starting assemble", "workspace", workspaceDir, "output", cfg.OutputDir)
	res, err := s.pipe.StartWorkspace(ctx, workspaceDir).Wait()

	return s.finish(res, err, report.RunConfig{OutputDir: cfg.OutputDir, WorkspaceDir: workspaceDir})
}
