// Copyright 2026 Asma Gulbaz

// set command

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <type> <attribute> <value> [key=value ...]",
		Short: "Write an attribute of the first matching element",
		Example: `  ax set text_field value hello title=Name
  ax set slider value 0.5`,
		Args:          cobra.MinimumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			el, err := findOne(rootOpts, args[0], args[3:])
			if err != nil {
				return err
			}
			value, err := parseFilterValue(args[2])
			if err != nil {
				return err
			}
			written, err := el.SetAttribute(args[1], value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", args[1], formatValue(written))
			return nil
		},
	}
}
