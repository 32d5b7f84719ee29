package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bbanting/budgettool/internal/config"
	"github.com/bbanting/budgettool/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var recordsDir string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd, absDir, recordsDir, useGit)
		},
	}

	cmd.Flags().StringVar(&recordsDir, "records-dir", "records", "records directory, relative to the ledger root")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and enable auto-commit")

	return cmd
}

func runInit(cmd *cobra.Command, dir, recordsDir string, useGit bool) error {
	if err := os.MkdirAll(filepath.Join(dir, recordsDir), 0o755); err != nil {
		return fmt.Errorf("creating records dir: %w", err)
	}

	cfg := config.Default(recordsDir)
	cfg.Git.AutoCommit = useGit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if useGit && !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		if _, err := gitops.CommitAll(dir, "init: new ledger", cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledger at %s\n", dir)
	return nil
}
