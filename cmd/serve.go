package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/collage/internal/config"
	"github.com/kiesman99/collage/internal/logging"
	"github.com/kiesman99/collage/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the collage API",
	Long: `Start an HTTP server that provides a REST API for collage composition.

Layout flags and config keys of the root command become the defaults for
requests that do not override them.

Examples:
  # Start server on default port 8080
  collage serve

  # Start server on custom port
  collage serve --port 3000

  # Allow 2 collages per second with bursts of 10
  collage serve --bind 0.0.0.0 --rate-limit 2 --burst 10`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server configuration
	serveCmd.Flags().StringP("bind", "b", "localhost", "bind address")
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	serveCmd.Flags().Duration("timeout", 30*time.Second, "request timeout")
	serveCmd.Flags().Float64("rate-limit", 0, "collage requests per second (0 disables)")
	serveCmd.Flags().Int("burst", 5, "collage request burst size")
	serveCmd.Flags().Int64("max-body", 32<<20, "maximum request body in bytes")
	serveCmd.Flags().Int64("max-pixels", server.DefaultMaxPixels, "maximum width*height of the canvas and of each input image (0 disables)")

	// Bind flags to viper
	bindings := map[string]string{
		config.KeyServerBind:      "bind",
		config.KeyServerPort:      "port",
		config.KeyServerTimeout:   "timeout",
		config.KeyServerRateLimit: "rate-limit",
		config.KeyServerBurst:     "burst",
		config.KeyServerMaxBody:   "max-body",
		config.KeyServerMaxPixels: "max-pixels",
	}
	for key, flag := range bindings {
		cobra.CheckErr(viper.BindPFlag(key, serveCmd.Flags().Lookup(flag)))
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())

	bind := viper.GetString(config.KeyServerBind)
	port := viper.GetInt(config.KeyServerPort)
	timeout := viper.GetDuration(config.KeyServerTimeout)

	defaults, warnings, err := config.LayoutConfig(viper.GetViper())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}
	if err := defaults.Validate(); err != nil {
		return fmt.Errorf("default layout: %w", err)
	}

	apiServer := server.NewServer(version,
		server.WithLogger(logger),
		server.WithDefaults(defaults),
		server.WithWorkers(viper.GetInt(config.KeyWorkers)),
		server.WithRateLimit(viper.GetFloat64(config.KeyServerRateLimit), viper.GetInt(config.KeyServerBurst)),
		server.WithMaxPixels(viper.GetInt64(config.KeyServerMaxPixels)),
	)

	addr := fmt.Sprintf("%s:%d", bind, port)
	httpServer := &http.Server{
		Addr: addr,
		Handler: server.Router(apiServer, server.RouterOptions{
			Timeout: timeout,
			MaxBody: viper.GetInt64(config.KeyServerMaxBody),
			Logger:  logger,
		}),
		ReadTimeout:  timeout,
		WriteTimeout: timeout + 5*time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("server shutdown", "err", err)
		}
	}()

	logger.Info("starting collage server", "addr", addr, "version", version)
	logger.Info("endpoints",
		"health", fmt.Sprintf("http://%s/api/v1/health", addr),
		"layouts", fmt.Sprintf("http://%s/api/v1/layouts", addr),
		"collage", fmt.Sprintf("http://%s/api/v1/collage", addr))

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
