// ABOUTME: Entries command for viewing a channel's stored entries
// ABOUTME: Displays entries with read status, title, and published date using color formatting

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/currents/internal/config"
)

var entriesCmd = &cobra.Command{
	Use:     "entries <channel-id>",
	Aliases: []string{"ls", "list"},
	Short:   "List a channel's entries",
	Long:    "List a channel's stored entries, newest published first",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unreadOnly, _ := cmd.Flags().GetBool("unread")

		entries, err := service.ListEntries(args[0])
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if unreadOnly {
			filtered := entries[:0]
			for _, entry := range entries {
				if !entry.Read {
					filtered = append(filtered, entry)
				}
			}
			entries = filtered
		}

		if len(entries) == 0 {
			fmt.Println("No entries found")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()

		for _, entry := range entries {
			fmt.Print(faint(shortID(entry.ID)))
			fmt.Print(" ")

			if entry.Read {
				fmt.Print("✓ ")
			} else {
				fmt.Print("  ")
			}

			fmt.Print(entry.Title)

			if !entry.PublishedAt.IsZero() {
				fmt.Print(" ")
				fmt.Print(faint(entry.PublishedAt.Format(config.DateFormatShort)))
			}

			fmt.Println()
		}

		return nil
	},
}

// shortID truncates an entry or channel ID for display
func shortID(id string) string {
	if len(id) > config.DisplayIDLength {
		return id[:config.DisplayIDLength]
	}
	return id
}

func init() {
	rootCmd.AddCommand(entriesCmd)

	entriesCmd.Flags().BoolP("unread", "u", false, "show only unread entries")
}
