// ABOUTME: Tests for CLI commands
// ABOUTME: Tests command structure, flags, and subcommands

package main

import (
	"testing"

	"github.com/harper/currents/internal/config"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "currents" {
		t.Errorf("expected Use to be 'currents', got %q", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("expected root command to have a short description")
	}
	if rootCmd.PersistentFlags().Lookup("data-dir") == nil {
		t.Error("expected --data-dir flag to exist")
	}
}

func TestChannelCommand(t *testing.T) {
	if channelCmd.Use != "channel" {
		t.Errorf("expected Use to be 'channel', got %q", channelCmd.Use)
	}
	if len(channelCmd.Aliases) == 0 {
		t.Error("expected channel command to have aliases")
	}
}

func TestChannelAddCommand(t *testing.T) {
	if channelAddCmd.Use != "add <url>" {
		t.Errorf("expected Use to be 'add <url>', got %q", channelAddCmd.Use)
	}
}

func TestChannelImportExportCommands(t *testing.T) {
	if channelImportCmd.Use != "import <file>" {
		t.Errorf("expected Use to be 'import <file>', got %q", channelImportCmd.Use)
	}
	if channelExportCmd.Use != "export [file]" {
		t.Errorf("expected Use to be 'export [file]', got %q", channelExportCmd.Use)
	}
}

func TestRefreshCommand(t *testing.T) {
	if refreshCmd.Use != "refresh [channel-id]" {
		t.Errorf("expected Use to be 'refresh [channel-id]', got %q", refreshCmd.Use)
	}
}

func TestEntriesCommand(t *testing.T) {
	if entriesCmd.Use != "entries <channel-id>" {
		t.Errorf("expected Use to be 'entries <channel-id>', got %q", entriesCmd.Use)
	}
	if entriesCmd.Flags().Lookup("unread") == nil {
		t.Error("expected --unread flag to exist")
	}
}

func TestToggleCommand(t *testing.T) {
	if toggleCmd.Use != "toggle <entry-id>" {
		t.Errorf("expected Use to be 'toggle <entry-id>', got %q", toggleCmd.Use)
	}
}

func TestMarkReadCommand(t *testing.T) {
	if markReadCmd.Use != "mark-read <channel-id>" {
		t.Errorf("expected Use to be 'mark-read <channel-id>', got %q", markReadCmd.Use)
	}
}

func TestServeCommand(t *testing.T) {
	if serveCmd.Use != "serve" {
		t.Errorf("expected Use to be 'serve', got %q", serveCmd.Use)
	}
	if serveCmd.Flags().Lookup("addr") == nil {
		t.Error("expected --addr flag to exist")
	}
}

func TestShortID(t *testing.T) {
	long := "0123456789abcdef"
	got := shortID(long)
	if len(got) != config.DisplayIDLength {
		t.Errorf("expected %d chars, got %q", config.DisplayIDLength, got)
	}

	short := "abc"
	if shortID(short) != short {
		t.Errorf("expected short IDs to pass through, got %q", shortID(short))
	}
}
