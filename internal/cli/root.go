package cli

import (
	"github.com/alexanderramin/stagehand/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Resources   service.ResourceService
	Allocations service.AllocationService
	Detection   service.DetectionService
	Conflicts   service.ConflictService

	// IsInteractive reports whether stdin is a terminal; interactive-only
	// prompts (suggestion picker) are skipped when it returns false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "stagehand" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "stagehand",
		Short: "Production schedule conflict detection",
	}

	root.AddCommand(
		newResourceCmd(app),
		newAllocationCmd(app),
		newDetectCmd(app),
		newConflictCmd(app),
	)

	return root
}
