package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/remotedeck/remotedeck/internal/infrastructure/container"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workspace to remote panels",
	Long: `Load the workspace and serve it over HTTP and websockets until
interrupted. Pending workspace changes are written before exit.`,
	Example: `  remotedeck serve
  remotedeck serve --listen 0.0.0.0:8787
  REMOTEDECK_LISTEN=:9000 remotedeck serve --ephemeral`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (overrides server.listen)")
	serveCmd.Flags().Bool("ephemeral", false, "keep the workspace in memory only")
	serveCmd.Flags().String("security-level", "", "capability security level: strict, standard, permissive")
	_ = viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
	_ = viper.BindPFlag("ephemeral", serveCmd.Flags().Lookup("ephemeral"))
	_ = viper.BindPFlag("security-level", serveCmd.Flags().Lookup("security-level"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rc, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	logger := slog.Default()

	c, err := container.New(ctx, container.Options{Config: rc, Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ln, err := net.Listen("tcp", rc.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", rc.ListenAddr, err)
	}
	srv := &http.Server{
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving control surface",
			"addr", ln.Addr().String(),
			"workspace", workspaceLabel(rc.Ephemeral, rc.WorkspacePath))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return errors.Join(srv.Shutdown(shutdownCtx), c.Shutdown(shutdownCtx))
	})
	return g.Wait()
}

func workspaceLabel(ephemeral bool, path string) string {
	if ephemeral {
		return "(in memory)"
	}
	return path
}
