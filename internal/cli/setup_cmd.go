package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// EnvFile returns the path of the env file the setup form writes and the
// binary loads at startup.
func EnvFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".multibuild", ".env"), nil
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Store the AI advisor credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := EnvFile()
			if err != nil {
				return err
			}

			existing, _ := godotenv.Read(path)
			apiKey := existing["MULTIBUILD_ADVISOR_API_KEY"]
			endpoint := existing["MULTIBUILD_ADVISOR_ENDPOINT"]
			model := existing["MULTIBUILD_ADVISOR_MODEL"]

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("API key").
						Description("Leave empty to run without the AI advisor.").
						EchoMode(huh.EchoModePassword).
						Value(&apiKey),
					huh.NewInput().
						Title("Endpoint").
						Placeholder("https://api.groq.com/openai/v1").
						Value(&endpoint),
					huh.NewInput().
						Title("Model").
						Placeholder("llama-3.1-8b-instant").
						Value(&model),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}

			values := map[string]string{}
			for k, v := range existing {
				values[k] = v
			}
			values["MULTIBUILD_ADVISOR_API_KEY"] = apiKey
			if endpoint != "" {
				values["MULTIBUILD_ADVISOR_ENDPOINT"] = endpoint
			}
			if model != "" {
				values["MULTIBUILD_ADVISOR_MODEL"] = model
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := godotenv.Write(values, path); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", path)
			if apiKey == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No API key set, the advisor stays disabled.")
			}
			return nil
		},
	}
}
