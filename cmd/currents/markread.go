// ABOUTME: Mark-read command for bulk-marking a channel's entries as read
// ABOUTME: Drives the channel's unread count to zero in one transaction

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/currents/internal/storage"
)

var markReadCmd = &cobra.Command{
	Use:   "mark-read <channel-id>",
	Short: "Mark all of a channel's entries as read",
	Long:  "Mark every entry in a channel as read and reset its unread count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := service.MarkChannelRead(args[0])
		if err != nil {
			if errors.Is(err, storage.ErrChannelNotFound) {
				return fmt.Errorf("channel not found: %s", args[0])
			}
			return fmt.Errorf("failed to mark channel read: %w", err)
		}

		if count == 0 {
			fmt.Println("No entries to mark as read")
		} else {
			fmt.Printf("Marked %d entries as read\n", count)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(markReadCmd)
}
