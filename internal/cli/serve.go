// Copyright 2026 Asma Gulbaz

// serve command: JSON-RPC 2.0 inspection server over stdio

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AsmaGulbaz/AXElements/internal/config"
	"github.com/AsmaGulbaz/AXElements/internal/server"
	"github.com/AsmaGulbaz/AXElements/internal/transport"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the inspection tools over stdio",
		Long: `Serve runs the JSON-RPC 2.0 inspection server on stdin/stdout.
Configuration is read from the environment (AX_SNAPSHOT, AX_WAIT_TIMEOUT,
AX_POLL_INTERVAL, AX_AUDIT_LOG, ...); --snapshot overrides AX_SNAPSHOT.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(rootOpts)
		},
	}
}

func runServer(rootOpts *RootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if rootOpts.Snapshot != "" {
		cfg.SnapshotPath = rootOpts.Snapshot
	}

	tree, _, err := loadRoot(&RootOptions{Snapshot: cfg.SnapshotPath})
	if err != nil {
		return err
	}

	logger := slog.Default()
	srv, err := server.NewInspectServer(cfg, logger, tree, tree.Root().Handle())
	if err != nil {
		return fmt.Errorf("creating inspection server: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	tr := transport.NewStdioTransport(os.Stdin, os.Stdout, logger)

	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if serveErr := srv.Serve(tr); serveErr != nil {
			errChan <- serveErr
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", "signal", sig.String())
		srv.Shutdown()
		_ = tr.Close()
	case err := <-errChan:
		logger.Error("server error", "err", err)
		srv.Shutdown()
		return err
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("server shutdown complete")
	case <-sigChan:
		logger.Warn("forced shutdown")
	}
	return nil
}
