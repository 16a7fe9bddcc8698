package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/newsbinder/internal/bindcmd"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newsbinder",
		Short: "Bind scanned newspaper pages into one PDF per issue",
		Long: `Newsbinder turns a directory of scanned newspaper pages into PDFs.

Each scan is named after its catalog record and capture date. Newsbinder looks
the catalog code up in a title export, renames the pages, and writes one
paginated PDF per capture date and newspaper.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(bindcmd.NewBindCmd())
	cmd.AddCommand(bindcmd.NewAssembleCmd())
	cmd.AddCommand(bindcmd.NewParseCmd())
	cmd.AddCommand(bindcmd.NewLookupCmd())

	return cmd
}
