// Package cli defines the Cobra command tree for the packagesmith CLI. Each
// file in this package registers one top-level command with the root command.
// Commands delegate to internal packages for provisioning and only handle
// flag parsing, I/O formatting, and user interaction.
package cli
