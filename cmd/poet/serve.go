package main

import (
	"context"
	"github.com/gissleh/poet/adapters/templfrontend"
	"github.com/gissleh/poet/adapters/webapi"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"syscall"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and the web front end",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		closeStorage, err := attachStorage(ctx)
		if err != nil {
			return err
		}
		defer closeStorage()

		cfg := app.cfg.Server
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		e, errCh := webapi.Setup(cfg.Addr, func(e *echo.Echo) {
			e.Server.ReadTimeout = cfg.ReadTimeout
			e.Server.WriteTimeout = cfg.WriteTimeout

			webapi.Register(e, app.svc)
			webapi.Metrics(e)
			if cfg.Frontend {
				templfrontend.Endpoints(e.Group(""), app.svc)
			}
		})
		app.logger.Info("listening", zap.String("addr", cfg.Addr), zap.Int("words", app.svc.Dictionary.Words()))

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		app.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides server.addr")
}
