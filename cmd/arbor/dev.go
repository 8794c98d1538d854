package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/dev"
	"github.com/arbor-dev/arbor/internal/errors"
)

func devCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the development server with hot reload.

The dev server watches the routes directory, recompiles the route
manifest on change, and pushes the fresh manifest to connected
browsers. Compile errors show up as an overlay in the browser.

Examples:
  arbor dev
  arbor dev --port=8080
  arbor dev --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from arbor.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from arbor.json)")

	return cmd
}

func runDev(port int, host string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	printBanner()
	fmt.Println("  dev")
	fmt.Println()

	server := dev.NewServer(dev.ServerOptions{
		Config: cfg,
		OnCompile: func(result *dev.CompileResult, err error) {
			if err != nil {
				errorMsg("%s", errors.FromCompile(err).Error())
				return
			}
			success("Compiled %d routes in %s", result.RouteCount, result.Duration.Round(time.Millisecond))
		},
		OnReload: func(clients int) {
			if clients > 0 {
				success("Reloaded %d browsers", clients)
			}
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
		server.Stop()
	}()

	info("Serving on http://%s", cfg.DevAddress())
	info("Manifest at http://%s/__arbor/manifest.json", cfg.DevAddress())
	fmt.Println()

	if err := server.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
