package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbanting/budgettool/internal/auditlog"
)

func newLogCommand(rootDir *string) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent ledger mutations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*rootDir)
			if err != nil {
				return err
			}

			entries, err := auditlog.Tail(e.records, n)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No log entries.")
				return nil
			}
			for _, le := range entries {
				fmt.Fprintf(out, "%s  %-7s %-8s %s\n",
					le.Timestamp.Format("2006-01-02 15:04"), le.Action, le.Period, le.Details)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "lines", "n", 20, "number of entries to show")
	return cmd
}
