// Copyright 2026 Asma Gulbaz

// find command

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find <type> [key=value ...]",
		Short: "Search the tree for matching elements",
		Long: `Search the tree breadth-first for elements matching a type and filters.

A singular type prints the first (shallowest) match; a plural type prints
every match in visitation order:

  ax find button title=OK
  ax find buttons`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := loadRoot(rootOpts)
			if err != nil {
				return err
			}
			filters, err := parseFilterArgs(args[1:])
			if err != nil {
				return err
			}

			result, err := root.Search(args[0], filters)
			if err != nil {
				return err
			}
			if result.Multi {
				if len(result.Elements) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no matches")
					return nil
				}
				for _, e := range result.Elements {
					fmt.Fprintln(cmd.OutOrStdout(), describe(e))
				}
				return nil
			}
			if result.Element == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), describe(result.Element))
			return nil
		},
	}
}
