package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bbanting/budgettool/internal/model"
)

func newAddCommand(rootDir *string) *cobra.Command {
	var dateArg string
	var tagsArg []string

	cmd := &cobra.Command{
		Use:   "add <amount> <target> [note...]",
		Short: "Add a record (amount must start with + or -)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*rootDir)
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			targetName := strings.ToLower(args[1])
			if !e.targets.Exists(targetName) {
				return fmt.Errorf("unknown target %q; register it with 'bt targets add %s <goal>'", targetName, targetName)
			}

			date := time.Now()
			if dateArg != "" {
				date, err = time.Parse("2006-01-02", dateArg)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", dateArg, err)
				}
			}

			rec, err := e.store.Add(model.Record{
				Date:   date,
				Amount: amount,
				Target: targetName,
				Note:   strings.Join(args[2:], " "),
				Tags:   tagsArg,
			})
			if err != nil {
				return err
			}

			p := e.store.PeriodOf(rec.Date)
			e.lineErrorWarnings(cmd.ErrOrStderr(), p)
			e.audit("add", p.String(), rec.ID, fmt.Sprintf("%s %s", dollarStr(rec.Amount), rec.Target))
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", renderRecord(rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateArg, "date", "", "record date (YYYY-MM-DD, default today)")
	cmd.Flags().StringSliceVar(&tagsArg, "tags", nil, "comma-separated tags")

	return cmd
}

// parseAmount requires an explicit sign so expense vs. earning is never
// ambiguous.
func parseAmount(s string) (decimal.Decimal, error) {
	if !strings.HasPrefix(s, "+") && !strings.HasPrefix(s, "-") {
		return decimal.Zero, fmt.Errorf("amount %q must start with + or -", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if d.IsZero() {
		return decimal.Zero, fmt.Errorf("amount must be non-zero")
	}
	return d, nil
}
