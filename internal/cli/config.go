package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Pratikmalviya12/template-designer/pkg/config"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if c.configPath != "" {
				fmt.Println(c.configPath)
				return
			}
			fmt.Println(config.Path())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Long: `Print the effective configuration: defaults, overlaid with the config
file, environment variables and --store. Redirect it to a file to start a
config of your own.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return cfg.Write(os.Stdout)
		},
	})

	return cmd
}
