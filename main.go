// =============================================================================
// TR-181 Excelifier - Main Entry Point
// =============================================================================
//
// This is the main entry point for the TR-181 Excelifier CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   excelifier -f model.xml            - Convert a device-model XML file
//   excelifier check -f model.xml      - Parse and lint without writing output
//   excelifier version                 - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/tr181tools/excelifier/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
