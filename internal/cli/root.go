// Package cli wires the cobra command tree for the multibuild binary.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/buildagent/multibuild/internal/catalog"
	"github.com/buildagent/multibuild/internal/engine"
	"github.com/buildagent/multibuild/internal/quickcalc"
)

// App holds the shared dependencies for all subcommands.
type App struct {
	Engine  *engine.Engine
	Catalog *catalog.Catalog
	Quick   *quickcalc.Calculator
	Log     zerolog.Logger
}

// NewRootCmd creates the top-level "multibuild" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "multibuild",
		Short:         "Conversational planner for masonry projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newChatCmd(app),
		newDemoCmd(app),
		newSetupCmd(),
	)

	return root
}
