package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briefmate/briefmate/internal/database"
	"github.com/briefmate/briefmate/internal/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		addr        string
		skipMigrate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ServerAddr
			}

			if !skipMigrate {
				if err := database.Migrate(); err != nil {
					return fmt.Errorf("failed to run migrations: %w", err)
				}
			}

			store, err := server.NewSessionStore(cfg)
			if err != nil {
				return err
			}

			suggester := server.NewAIService(cfg)
			if suggester == nil {
				log.Warn("OPENAI_API_KEY is not set, task generation is disabled")
			}

			router := server.NewRouter(server.Deps{
				Config:       cfg,
				DB:           database.GetDB(),
				SessionStore: store,
				Suggester:    suggester,
			})

			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("Server starting", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			log.Info("Server exited gracefully")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to SERVER_ADDR)")
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not auto-migrate on startup")

	return cmd
}
