// Copyright 2026 Asma Gulbaz

// tree command

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AsmaGulbaz/AXElements/ax"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "tree",
		Short:         "Render the element hierarchy",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := loadRoot(rootOpts)
			if err != nil {
				return err
			}
			return renderTree(cmd.OutOrStdout(), root, 0)
		},
	}
}

// renderTree writes the hierarchy under el with two-space indentation.
func renderTree(w io.Writer, el *ax.Element, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describe(el)); err != nil {
		return err
	}
	children, err := el.Children()
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := renderTree(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
