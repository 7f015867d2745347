package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/valuate/internal/server"

	"github.com/spf13/cobra"
)

var (
	flagServeAddr         string
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve valuations over HTTP with an SSE event stream",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 0, "Max in-memory events retained (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rc, err := resolve(cmd)
	if err != nil {
		return err
	}

	cfg := server.Config{
		Addr:         rc.cfg.Server.Addr,
		EventsBuffer: rc.cfg.Server.EventsBuffer,
		Defaults:     rc.inputs,
		Simulation:   rc.opts,
		Bins:         rc.cfg.Simulation.Bins,
	}
	if flagServeAddr != "" {
		cfg.Addr = flagServeAddr
	}
	if flagServeEventsBuffer > 0 {
		cfg.EventsBuffer = flagServeEventsBuffer
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg).Run(ctx)
}
