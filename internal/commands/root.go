package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbanting/budgettool/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var rootDir string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "bt",
		Short:   "Plain-text personal budget ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "C", ".", "ledger directory (containing bt.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAddCommand(&rootDir))
	rootCmd.AddCommand(newListCommand(&rootDir))
	rootCmd.AddCommand(newEditCommand(&rootDir))
	rootCmd.AddCommand(newRemoveCommand(&rootDir))
	rootCmd.AddCommand(newRenameCommand(&rootDir))
	rootCmd.AddCommand(newTargetsCommand(&rootDir))
	rootCmd.AddCommand(newImportCommand(&rootDir))
	rootCmd.AddCommand(newLogCommand(&rootDir))

	return rootCmd
}
