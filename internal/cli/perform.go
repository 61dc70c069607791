// Copyright 2026 Asma Gulbaz

// perform command

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPerformCommand creates the perform command.
func NewPerformCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "perform <type> <action> [key=value ...]",
		Short: "Invoke an action on the first matching element",
		Example: `  ax perform button press title=OK
  ax perform menu_item press title=Quit`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			el, err := findOne(rootOpts, args[0], args[2:])
			if err != nil {
				return err
			}
			ok, err := el.Perform(args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("action %s reported failure", args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "performed %s on %s\n", args[1], describe(el))
			return nil
		},
	}
}
