package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/lens/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Display the effective configuration",
		Long: `Shows the configuration lens would use from the current directory:
the discovered config file (lens.yml, lens.yaml, or lens.toml, searched
upward from the working directory and then in ~/.config/lens/), or the
built-in defaults when no file exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			path, err := config.FindConfigFile(cwd)
			if err != nil {
				fmt.Println("# No config file found; showing defaults")
			} else {
				fmt.Printf("# Source: %s\n", path)
			}

			cfg, err := config.LoadDefault()
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
	return cmd
}
