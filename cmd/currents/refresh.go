// ABOUTME: Refresh command to synchronize channels with their upstream feeds
// ABOUTME: Refreshes all channels or one by ID with colored progress output

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/currents/internal/models"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [channel-id]",
	Short: "Refresh channels from their feeds",
	Long: `Fetch and synchronize all channels, or a single channel by ID.

Each refresh fetches the feed, validates its items, stores the ones not
seen before, and recomputes the channel's unread count.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channels, err := store.ListChannels()
		if err != nil {
			return fmt.Errorf("failed to list channels: %w", err)
		}

		if len(channels) == 0 {
			fmt.Println("No channels found. Add one with 'currents channel add <url>'")
			return nil
		}

		// Filter to a specific channel if an ID was given
		if len(args) == 1 {
			target := args[0]
			filtered := []*models.Channel{}
			for _, ch := range channels {
				if ch.ID == target {
					filtered = append(filtered, ch)
					break
				}
			}
			if len(filtered) == 0 {
				return fmt.Errorf("channel not found: %s", target)
			}
			channels = filtered
		}

		totalEntries := 0
		totalErrors := 0

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		for _, ch := range channels {
			fmt.Printf("Refreshing %s... ", ch.Link)

			before := ch.Unread
			doc, err := service.Refresh(cmd.Context(), ch.ID)
			if err != nil {
				fmt.Printf("%s %s\n", red("x"), err.Error())
				totalErrors++
				continue
			}

			// Re-read the channel to see how many entries the batch added
			refreshed, err := store.GetChannel(ch.ID)
			if err != nil {
				return fmt.Errorf("failed to re-read channel: %w", err)
			}

			newCount := refreshed.Unread - before
			if newCount > 0 {
				fmt.Printf("%s %d new (%d in feed)\n", green("v"), newCount, len(doc.Entries))
				totalEntries += newCount
			} else {
				fmt.Printf("%s no new entries %s\n", green("v"), faint(fmt.Sprintf("(%d in feed)", len(doc.Entries))))
			}
		}

		fmt.Println()
		fmt.Printf("Summary: %d channel(s) refreshed\n", len(channels)-totalErrors)
		if totalEntries > 0 {
			fmt.Printf("  %s %d new entries\n", green("v"), totalEntries)
		}
		if totalErrors > 0 {
			fmt.Printf("  %s %d errors\n", red("x"), totalErrors)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
