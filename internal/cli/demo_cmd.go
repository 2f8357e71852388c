package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/buildagent/multibuild/internal/quickcalc"
)

var (
	demoTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	demoDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Price the three sample oven configurations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			demos := []struct {
				label string
				area  float64
				tier  quickcalc.Tier
			}{
				{"Kompakter Ofen", 1.2, quickcalc.TierGuenstig},
				{"Standard Ofen", 1.8, quickcalc.TierSchnell},
				{"Großer Ofen", 2.5, quickcalc.TierPremium},
			}

			out := cmd.OutOrStdout()
			for _, d := range demos {
				list, err := app.Quick.Run(quickcalc.Requirements{AreaSqm: d.area, Quality: d.tier})
				if err != nil {
					return err
				}

				fmt.Fprintln(out, demoTitleStyle.Render(
					fmt.Sprintf("%s (%.1f qm, %s)", d.label, d.area, d.tier)))
				for _, c := range list.Components {
					fmt.Fprintf(out, "  %3d %-6s %-28s €%8.2f\n", c.Amount, c.Unit, c.Name, c.TotalPrice)
				}
				fmt.Fprintf(out, "  %s\n", demoDimStyle.Render(
					fmt.Sprintf("total €%.2f, build time %s", list.TotalCost, list.EstimatedBuildTime)))
				fmt.Fprintln(out, demoDimStyle.Render("  "+list.ImagePrompt.Description))
				fmt.Fprintln(out, strings.Repeat("─", 56))
			}
			return nil
		},
	}
}
