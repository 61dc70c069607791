// Copyright 2026 Asma Gulbaz

// get command

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AsmaGulbaz/AXElements/ax"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> <attribute> [key=value ...]",
		Short: "Read an attribute of the first matching element",
		Example: `  ax get window title
  ax get button enabled? title=OK`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			el, err := findOne(rootOpts, args[0], args[2:])
			if err != nil {
				return err
			}
			value, err := el.Attribute(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[1], formatValue(value))
			return nil
		},
	}
}

// findOne resolves a singular target or fails.
func findOne(rootOpts *RootOptions, typeSpec string, filterArgs []string) (*ax.Element, error) {
	_, root, err := loadRoot(rootOpts)
	if err != nil {
		return nil, err
	}
	filters, err := parseFilterArgs(filterArgs)
	if err != nil {
		return nil, err
	}
	result, err := root.Search(typeSpec, filters)
	if err != nil {
		return nil, err
	}
	if result.Multi {
		return nil, fmt.Errorf("%q names multiple elements; use the singular form", typeSpec)
	}
	if result.Element == nil {
		return nil, fmt.Errorf("no %s matches the filters", typeSpec)
	}
	return result.Element, nil
}
