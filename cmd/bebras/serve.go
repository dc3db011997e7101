package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spektr-org/bebras/render"
	"github.com/spektr-org/bebras/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard as a JSON and PNG HTTP API",
	Example: `  bebras serve --addr :9000
  curl 'localhost:9000/api/report?region=Jawa+Barat&rows=false'`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dash, err := loadDashboard(ctx, cfg, logger)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		addr = v
	}

	srv := server.New(dash, server.Options{
		Addr:      addr,
		ChartSize: render.Size{Width: cfg.Charts.Width, Height: cfg.Charts.Height},
		Logger:    logger,
	})
	return srv.Start(ctx)
}
