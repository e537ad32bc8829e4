// =============================================================================
// Post File Merger - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Post File Merger CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   postmerge merge --base-dir DIR  - Merge all input files under DIR
//   postmerge version               - Display the application version
//
// ARCHITECTURE:
//   cmd/           : CLI command definitions (Cobra)
//   internal/      : Core business logic (not for external import)
//
// =============================================================================

package main

import (
	"github.com/postaltools/postmerge/cmd"
)

func main() {
	cmd.Execute()
}
