// Copyright 2026 Asma Gulbaz

// wait command

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AsmaGulbaz/AXElements/ax"
)

// WaitOptions holds flags for the wait command.
type WaitOptions struct {
	*RootOptions
	Timeout  time.Duration
	Interval time.Duration
	Gone     bool
}

// NewWaitCommand creates the wait command.
func NewWaitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WaitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "wait <type> [key=value ...]",
		Short: "Wait for an element to appear, or with --gone, to go away",
		Long: `Wait polls the tree until an element matching the type and filters
appears, or until the timeout elapses. With --gone the meaning inverts:
wait until no such element is valid. Timing out is reported on exit code 1;
it is not an error.

  ax wait sheet --timeout 2s
  ax wait window title=Progress --gone`,
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

			typ, multi := ax.TypeQualifier(args[0])
			q := ax.Qualifier{Type: typ, Filters: filters}
			waitOpts := ax.WaitOptions{Timeout: opts.Timeout, Interval: opts.Interval}

			if opts.Gone {
				if ax.WaitForInvalidationOf(cmd.Context(), root, q, waitOpts) {
					fmt.Fprintln(cmd.OutOrStdout(), "gone")
					return nil
				}
				return fmt.Errorf("still present after %s", opts.Timeout)
			}

			if multi {
				els := ax.WaitForAll(cmd.Context(), root, q, waitOpts)
				if len(els) == 0 {
					return fmt.Errorf("no %s appeared within %s", args[0], opts.Timeout)
				}
				for _, e := range els {
					fmt.Fprintln(cmd.OutOrStdout(), describe(e))
				}
				return nil
			}

			el := ax.WaitFor(cmd.Context(), root, q, waitOpts)
			if el == nil {
				return fmt.Errorf("no %s appeared within %s", args[0], opts.Timeout)
			}
			fmt.Fprintln(cmd.OutOrStdout(), describe(el))
			return nil
		},
	}

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", ax.DefaultWaitTimeout, "how long to wait")
	cmd.Flags().DurationVar(&opts.Interval, "interval", ax.DefaultPollInterval, "poll interval")
	cmd.Flags().BoolVar(&opts.Gone, "gone", false, "wait for the element to become invalid instead")

	return cmd
}
