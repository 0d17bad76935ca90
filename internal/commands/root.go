package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerbench-dev/ledgerbench/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledgerbench",
		Short:   "Benchmark LLM backends on structured financial-document generation",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newModelsCommand())
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}
