// ABOUTME: Root Cobra command and global flags
// ABOUTME: Sets up CLI structure and initializes config, storage, and the feed service

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/currents/internal/config"
	"github.com/harper/currents/internal/feed"
	"github.com/harper/currents/internal/fetch"
	"github.com/harper/currents/internal/storage"
)

var (
	dataDir string
	cfg     *config.Config
	store   storage.Store
	service *feed.Service
)

var rootCmd = &cobra.Command{
	Use:   "currents",
	Short: "RSS/Atom channel tracker with durable read state",
	Long: `currents ingests syndication feeds, stores their entries durably,
and keeps a per-channel unread count consistent with entry read state.

Subscribe channels, refresh them on demand, and toggle entries
read/unread from the CLI or over the HTTP API (see 'currents serve').`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		service = feed.NewService(store, fetch.NewClient(cfg.GetFetchTimeout()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			if err := store.Close(); err != nil {
				return fmt.Errorf("failed to close storage: %w", err)
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: ~/.local/share/currents)")
}
