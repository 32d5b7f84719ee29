package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbanting/budgettool/internal/importer"
)

func newImportCommand(rootDir *string) *cobra.Command {
	var targetArg string
	var tagsArg []string

	cmd := &cobra.Command{
		Use:   "import <statement.csv>",
		Short: "Import a bank statement CSV as records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*rootDir)
			if err != nil {
				return err
			}
			if !e.targets.Exists(targetArg) {
				return fmt.Errorf("unknown target %q", targetArg)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening statement: %w", err)
			}
			defer f.Close()

			rows, err := importer.Parse(f)
			if err != nil {
				return err
			}

			res, err := importer.Import(e.store, rows, targetArg, tagsArg)
			if err != nil {
				return err
			}

			e.audit("import", "", 0, fmt.Sprintf("%s: %d added, %d skipped", args[0], len(res.Added), res.Skipped))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s), skipped %d duplicate(s).\n", len(res.Added), res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetArg, "target", "", "target for the imported records (required)")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().StringSliceVar(&tagsArg, "tags", nil, "tags applied to every imported record")

	return cmd
}
