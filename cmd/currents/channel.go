// ABOUTME: Channel management commands for subscribing and listing feed sources
// ABOUTME: Includes OPML import/export for moving subscriptions in and out

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/currents/internal/models"
	"github.com/harper/currents/internal/opml"
	"github.com/harper/currents/internal/storage"
)

var channelCmd = &cobra.Command{
	Use:     "channel",
	Aliases: []string{"ch"},
	Short:   "Manage subscribed channels",
	Long:    "Add, list, import, and export feed channel subscriptions",
}

var channelAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Subscribe to a new channel",
	Long:  "Add a feed URL as a new channel subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link := args[0]

		// Check if channel already exists
		existing, err := store.GetChannelByLink(link)
		if err != nil && !errors.Is(err, storage.ErrChannelNotFound) {
			return fmt.Errorf("failed to check for existing channel: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("channel already exists: %s", link)
		}

		ch := models.NewChannel(link)
		if err := store.CreateChannel(ch); err != nil {
			return fmt.Errorf("failed to create channel: %w", err)
		}

		fmt.Printf("Added channel: %s\n", link)
		fmt.Printf("Channel ID: %s\n", ch.ID)

		return nil
	},
}

var channelListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all channels",
	Long:    "List all subscribed channels with their unread counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		channels, err := store.ListChannels()
		if err != nil {
			return fmt.Errorf("failed to list channels: %w", err)
		}

		if len(channels) == 0 {
			fmt.Println("No channels found. Add one with 'currents channel add <url>'")
			return nil
		}

		fmt.Printf("Found %d channel(s):\n\n", len(channels))
		for _, ch := range channels {
			fmt.Printf("%s  %s\n", shortID(ch.ID), ch.Link)
			fmt.Printf("  unread: %d\n\n", ch.Unread)
		}

		return nil
	},
}

var channelImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import channels from an OPML file",
	Long:  "Import subscriptions from an OPML file, skipping URLs already subscribed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := opml.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to parse OPML: %w", err)
		}

		added := 0
		skipped := 0
		for _, sub := range doc.Subscriptions {
			_, err := store.GetChannelByLink(sub.URL)
			if err == nil {
				skipped++
				continue
			}
			if !errors.Is(err, storage.ErrChannelNotFound) {
				return fmt.Errorf("failed to check for existing channel: %w", err)
			}

			ch := models.NewChannel(sub.URL)
			if err := store.CreateChannel(ch); err != nil {
				return fmt.Errorf("failed to create channel %s: %w", sub.URL, err)
			}
			added++
		}

		fmt.Printf("Imported %d channel(s)", added)
		if skipped > 0 {
			fmt.Printf(", skipped %d already subscribed", skipped)
		}
		fmt.Println()

		return nil
	},
}

var channelExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export channels to OPML",
	Long:  "Export all channel subscriptions as OPML, to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channels, err := store.ListChannels()
		if err != nil {
			return fmt.Errorf("failed to list channels: %w", err)
		}

		doc := opml.NewDocument("currents subscriptions")
		for _, ch := range channels {
			if err := doc.Add(ch.Link, ch.Link); err != nil {
				return fmt.Errorf("failed to add %s to OPML: %w", ch.Link, err)
			}
		}

		if len(args) == 1 {
			if err := doc.WriteFile(args[0]); err != nil {
				return fmt.Errorf("failed to write OPML: %w", err)
			}
			fmt.Printf("Exported %d channel(s) to %s\n", len(channels), args[0])
			return nil
		}

		return doc.Write(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(channelCmd)
	channelCmd.AddCommand(channelAddCmd)
	channelCmd.AddCommand(channelListCmd)
	channelCmd.AddCommand(channelImportCmd)
	channelCmd.AddCommand(channelExportCmd)
}
