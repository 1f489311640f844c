package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harrylevesque/freqgraphs/internal"
	"github.com/harrylevesque/freqgraphs/internal/api"
	"github.com/harrylevesque/freqgraphs/internal/site"
	"github.com/harrylevesque/freqgraphs/internal/utils"
	"github.com/harrylevesque/freqgraphs/web"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:          "freqgraphs-server",
		Short:        "Serve the frequency graphs test site",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := internal.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if verbose {
				cfg.LogLevel = "debug"
			}

			logger, err := utils.NewLogger(utils.LoggerOptions{
				Level:       cfg.LogLevel,
				Development: cfg.Development(),
				FilePath:    cfg.LogFile,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, ln, cfg.ShutdownTimeout, logger)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", internal.DefaultConfigPath(), "path to config.yaml")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// serve runs the site on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration, logger *zap.Logger) error {
	assets, err := fs.Sub(web.ContentFS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	s := site.New(logger)
	srv := &http.Server{
		Handler:           api.NewRouter(api.NewHandler(s, assets, logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh
	logger.Info("http server stopped", zap.Int("page_loads", s.Loads()))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
