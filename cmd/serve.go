package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"skyline/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dash, err := loadDashboard(ctx)
		if err != nil {
			return err
		}
		addr := cfg.ListenAddr
		if cmd.Flags().Changed("addr") && serveAddr != "" {
			addr = serveAddr
		}
		return server.New(dash, logger).ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config listen_addr)")
}
