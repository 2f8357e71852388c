package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/buildagent/multibuild/internal/tui"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Plan a project in an interactive chat",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("chat needs an interactive terminal, use 'multibuild serve' instead")
			}
			return tui.Run(app.Engine)
		},
	}
}
