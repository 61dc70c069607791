// Copyright 2026 Asma Gulbaz

// Package cli implements the ax command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AsmaGulbaz/AXElements/ax"
	"github.com/AsmaGulbaz/AXElements/axtest"
	"github.com/AsmaGulbaz/AXElements/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Snapshot string
	Verbose  bool
}

// NewRootCommand creates the root command for the ax CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ax",
		Short: "Inspect and manipulate an accessibility tree",
		Long: `ax reads, writes, searches, and waits on a tree of UI objects.

The tree is served from a YAML snapshot (--snapshot or AX_SNAPSHOT), which
makes every command reproducible offline. Filters are key=value pairs;
wrap a value in slashes to match it as a regular expression:

  ax find buttons title=/^Save/ --snapshot ui.yaml`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
			ax.SetLogger(slog.Default())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Snapshot, "snapshot", "", "path to a YAML tree snapshot")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewPerformCommand(opts))
	cmd.AddCommand(NewWaitCommand(opts))
	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// loadRoot opens the configured snapshot and wraps its root element.
func loadRoot(opts *RootOptions) (*axtest.Tree, *ax.Element, error) {
	path := opts.Snapshot
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		path = cfg.SnapshotPath
	}
	if path == "" {
		return nil, nil, fmt.Errorf("no tree source: pass --snapshot or set AX_SNAPSHOT")
	}

	tree, err := axtest.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	root, err := ax.NewElement(tree, tree.Root().Handle())
	if err != nil {
		return nil, nil, err
	}
	return tree, root, nil
}

// parseFilterArgs converts key=value arguments into an ax.Filter. Values in
// /slashes/ compile as regular expressions; "true"/"false" and numbers are
// typed; everything else stays a string.
func parseFilterArgs(args []string) (ax.Filter, error) {
	if len(args) == 0 {
		return nil, nil
	}
	f := make(ax.Filter, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("filter %q is not key=value", arg)
		}
		parsed, err := parseFilterValue(value)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", key, err)
		}
		f[key] = parsed
	}
	return f, nil
}

func parseFilterValue(value string) (any, error) {
	if len(value) >= 2 && strings.HasPrefix(value, "/") && strings.HasSuffix(value, "/") {
		return regexp.Compile(value[1 : len(value)-1])
	}
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, nil
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n, nil
	}
	return value, nil
}

// formatValue renders an attribute value for command output.
func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "(absent)"
	case *ax.Element:
		return describe(value)
	case []any:
		parts := make([]string, len(value))
		for i, item := range value {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case string:
		return strconv.Quote(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// describe renders one element for command output.
func describe(e *ax.Element) string {
	role := e.Role()
	if role == "" {
		role = "element"
	}
	if v, err := e.Attribute("title"); err == nil {
		if title, ok := v.(string); ok && title != "" {
			return fmt.Sprintf("%s %q (handle %d)", role, title, e.Handle())
		}
	}
	return fmt.Sprintf("%s (handle %d)", role, e.Handle())
}
