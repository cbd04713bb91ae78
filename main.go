// =============================================================================
// Card View - Main Entry Point
// =============================================================================
//
// USAGE:
//   cardview render      - Render all record files in the input directory
//   cardview watch       - Re-render record files as they change
//   cardview validate    - Validate card configurations
//   cardview cards       - List the built-in card kinds
//   cardview version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core logic (heading maps, cards, loaders, renderers)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/cardview/cmd"
)

func main() {
	cmd.Execute()
}
