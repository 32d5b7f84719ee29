package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenameCommand(rootDir *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rename <old-target> <new-target>",
		Short: "Rename a target across the registry and every record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*rootDir)
			if err != nil {
				return err
			}
			oldName, newName := args[0], args[1]

			// Renames touch history, so surface the blast radius first.
			n, err := e.store.CountTarget(oldName)
			if err != nil {
				return err
			}
			if n > 0 && !yes {
				prompt := fmt.Sprintf("%d record(s) reference %q; rename them all to %q?", n, oldName, newName)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			changed, err := e.targets.Rename(e.store, oldName, newName)
			if err != nil {
				return err
			}

			e.audit("rename", "", 0, fmt.Sprintf("%s -> %s (%d records)", oldName, newName, changed))
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q; %d record(s) updated.\n", oldName, newName, changed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}
