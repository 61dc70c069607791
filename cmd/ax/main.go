// Copyright 2026 Asma Gulbaz

// ax inspects and manipulates accessibility trees.

package main

import (
	"fmt"
	"os"

	"github.com/AsmaGulbaz/AXElements/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
