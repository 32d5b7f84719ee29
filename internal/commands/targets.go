package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bbanting/budgettool/internal/target"
)

func newTargetsCommand(rootDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Manage the target registry",
	}

	cmd.AddCommand(newTargetsListCommand(rootDir))
	cmd.AddCommand(newTargetsAddCommand(rootDir))
	cmd.AddCommand(newTargetsGoalCommand(rootDir))
	cmd.AddCommand(newTargetsRemoveCommand(rootDir))

	return cmd
}

func newTargetsListCommand(rootDir *string) *cobra.Command {
	var periodArg string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show targets with actual vs. goal for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*rootDir)
			if err != nil {
				return err
			}
			p, err := e.activePeriod(periodArg)
			if err != nil {
				return err
			}

			summaries, err := e.targets.Summary(e.store, p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No targets.")
				return nil
			}

			fmt.Fprintf(out, "Targets for %s:\n", p)
			for _, s := range summaries {
				mark := " "
				if !s.Met() {
					mark = "!"
				}
				fmt.Fprintf(out, "%s %-16s%12s / %s\n", mark, s.Target.Name, dollarStr(s.Actual), dollarStr(s.Target.Goal))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&periodArg, "period", "", "period to summarize (default: active period)")
	return cmd
}

func newTargetsAddCommand(rootDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <goal>",
		Short: "Register a new target with a per-period goal amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*rootDir)
			if err != nil {
				return err
			}

			goal, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing goal %q: %w", args[1], err)
			}
			if err := e.targets.Add(target.Target{Name: args[0], Goal: goal}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added target %q\n", args[0])
			return nil
		},
	}
}

func newTargetsGoalCommand(rootDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "goal <name> <amount>",
		Short: "Set a target's goal amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*rootDir)
			if err != nil {
				return err
			}

			goal, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing goal %q: %w", args[1], err)
			}
			if err := e.targets.SetGoal(args[0], goal); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set goal for %q to %s\n", args[0], dollarStr(goal))
			return nil
		},
	}
}

func newTargetsRemoveCommand(rootDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove an unused target from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*rootDir)
			if err != nil {
				return err
			}
			if err := e.targets.Remove(e.store, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed target %q\n", args[0])
			return nil
		},
	}
}
