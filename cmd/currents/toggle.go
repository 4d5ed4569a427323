// ABOUTME: Toggle command for flipping an entry's read flag
// ABOUTME: The owning channel's unread count is recomputed atomically with the flip

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/currents/internal/storage"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <entry-id>",
	Short: "Toggle an entry's read state",
	Long:  "Flip an entry between read and unread; the channel's unread count follows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := service.ToggleRead(args[0])
		if err != nil {
			if errors.Is(err, storage.ErrEntryNotFound) {
				return fmt.Errorf("entry not found: %s", args[0])
			}
			return fmt.Errorf("failed to toggle entry: %w", err)
		}

		state := "unread"
		if entry.Read {
			state = "read"
		}
		fmt.Printf("Marked as %s: %s\n", state, entry.Title)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
