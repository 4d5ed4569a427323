// ABOUTME: Serve command exposing the HTTP API
// ABOUTME: Starts the chi-based server over the shared store and feed service

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/currents/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the currents HTTP API server.

Exposes channel subscription, feed refresh, entry listing, and read-state
toggles as JSON endpoints under /api.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.GetListenAddr()
		}

		srv := server.New(store, service)
		fmt.Printf("Listening on %s\n", addr)
		return srv.Start(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "listen address (default from config, falls back to :8000)")
}
