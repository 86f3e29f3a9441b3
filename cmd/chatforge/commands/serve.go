package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mgarrido/chatforge/internal/infra/config"
	"github.com/mgarrido/chatforge/internal/infra/llm"
	"github.com/mgarrido/chatforge/internal/infra/sqlite"
	"github.com/mgarrido/chatforge/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Host to listen on")
	cmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	provider, err := llm.New(cfg)
	if err != nil {
		return err
	}

	db, err := sqlite.NewDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := sqlite.MigrateUp(db); err != nil {
		db.Close() //nolint:errcheck
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	httpCfg := server.DefaultConfig()
	httpCfg.Host = serveHost
	httpCfg.Port = servePort
	srv := server.NewServer(db, httpCfg, &cfg, provider)

	// Shut down cleanly on SIGINT/SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(cmd.Context()) }()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
