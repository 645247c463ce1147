package cmd

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"skyline/server"
	"skyline/snapshot"
)

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture the dashboard for a selection as a PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := loadDashboard(cmd.Context())
		if err != nil {
			return err
		}
		q := selectionFromFlags(cmd, dash)

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("snapshot: listen: %w", err)
		}
		ctx, cancel := context.WithCancel(cmd.Context())
		served := make(chan error, 1)
		go func() { served <- server.New(dash, logger).Serve(ctx, ln) }()

		params := url.Values{"submitted": {"1"}}
		params["city"] = q.Cities
		params.Set("min_height", strconv.FormatFloat(q.MinHeight, 'f', -1, 64))
		params.Set("min_year", strconv.Itoa(q.MinYear))
		pageURL := "http://" + ln.Addr().String() + "/?" + params.Encode()

		captureErr := snapshot.New(cfg, logger).Capture(ctx, pageURL, snapshotOut)
		cancel()
		if err := <-served; err != nil {
			logger.Warn("[snapshot] Dashboard server: %v", err)
		}
		return captureErr
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	addSelectionFlags(snapshotCmd)
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "dashboard.png", "PNG output path")
}
