// ABOUTME: Centralized configuration defaults for currents
// ABOUTME: Display formatting constants shared by the CLI commands

package config

// Display settings
const (
	DisplayIDLength = 8
	DateFormatShort = "02 Jan 06 15:04 MST"
)
