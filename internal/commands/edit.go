package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbanting/budgettool/internal/store"
)

func newEditCommand(rootDir *string) *cobra.Command {
	var periodArg, dateArg, amountArg, targetArg, noteArg string
	var tagsArg []string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of a record",
		Args:  cobra.ExactArgs(1),
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

			var changes store.Changes
			if dateArg != "" {
				d, err := time.Parse("2006-01-02", dateArg)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", dateArg, err)
				}
				changes.Date = &d
			}
			if amountArg != "" {
				a, err := parseAmount(amountArg)
				if err != nil {
					return err
				}
				changes.Amount = &a
			}
			if targetArg != "" {
				if !e.targets.Exists(targetArg) {
					return fmt.Errorf("unknown target %q", targetArg)
				}
				changes.Target = &targetArg
			}
			if cmd.Flags().Changed("note") {
				changes.Note = &noteArg
			}
			if cmd.Flags().Changed("tags") {
				changes.Tags = tagsArg
			}

			rec, err := e.store.Edit(p, id, changes)
			if err != nil {
				return err
			}

			e.audit("edit", p.String(), rec.ID, fmt.Sprintf("%s %s", dollarStr(rec.Amount), rec.Target))
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", renderRecord(rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&periodArg, "period", "", "period the record lives in (default: active period)")
	cmd.Flags().StringVar(&dateArg, "date", "", "new date (must stay within the period)")
	cmd.Flags().StringVar(&amountArg, "amount", "", "new amount (signed)")
	cmd.Flags().StringVar(&targetArg, "target", "", "new target")
	cmd.Flags().StringVar(&noteArg, "note", "", "new note")
	cmd.Flags().StringSliceVar(&tagsArg, "tags", nil, "replacement tag list")

	return cmd
}
