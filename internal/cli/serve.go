package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/remedy/internal/api"
	"github.com/randalmurphal/remedy/internal/config"
)

// newServeCmd creates the serve command for the API server
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the remedy API server.

The server provides REST endpoints for the task list, category
filters, aggregate progress, and workflow sessions, plus a WebSocket
event stream at /api/ws for live task and session updates.

Example:
  remedy serve              # Start on the configured address (default :8080)
  remedy serve --port 3000  # Start on a custom port`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load remedy config for defaults
			cfg, err := config.Load()
			if err != nil {
				// Use defaults if config not available
				cfg = config.Default()
			}
			if seedFile != "" {
				cfg.SeedFile = seedFile
			}

			addr := cfg.Server.Addr
			if cmd.Flags().Changed("port") {
				port, _ := cmd.Flags().GetInt("port")
				addr = fmt.Sprintf(":%d", port)
			}

			logLevel := slog.LevelInfo
			if verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

			server, err := api.New(&api.Config{
				Addr:   addr,
				Logger: logger,
				Remedy: cfg,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Starting API server on %s...\n", addr)
			fmt.Println("Press Ctrl+C to stop")

			// Handle graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			go func() {
				<-sigCh
				fmt.Println("\nShutting down...")
				cancel()
			}()

			return server.StartContext(ctx)
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "port to listen on")

	return cmd
}
