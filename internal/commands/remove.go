package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRemoveCommand(rootDir *string) *cobra.Command {
	var periodArg string
	var yes bool

	cmd := &cobra.Command{
		Use:     "del <id>",
		Aliases: []string{"delete", "remove"},
		Short:   "Soft-delete a record (hides it; the id is never reused)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*rootDir)
			if err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			p, err := e.activePeriod(periodArg)
			if err != nil {
				return err
			}

			rec, err := e.store.Get(p, id)
			if err != nil {
				return err
			}

			if !yes {
				prompt := fmt.Sprintf("Delete %s?", renderRecord(rec))
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := e.store.Delete(p, id); err != nil {
				return err
			}

			e.audit("delete", p.String(), id, fmt.Sprintf("%s %s", dollarStr(rec.Amount), rec.Target))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %d from %s\n", id, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&periodArg, "period", "", "period the record lives in (default: active period)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}
