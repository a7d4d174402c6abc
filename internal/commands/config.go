package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/folio/internal/config"
	"github.com/diogo/folio/internal/render"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise configuration",
		Long:  `Inspect folio settings stored in ~/.folio/config.json (or $FOLIO_HOME).`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, string(data))
			fmt.Fprintln(out)
			fmt.Fprintf(out, "api key:        %s\n", keyStatus(config.APIKey()))
			fmt.Fprintf(out, "contact form:   %s\n", enabled(cfg.Contact.Configured()))
			fmt.Fprintf(out, "tui themes:     %s\n", strings.Join(render.TUIThemeNames(), ", "))

			var styles []string
			for _, s := range render.MarkdownStyles() {
				styles = append(styles, s.Name)
			}
			fmt.Fprintf(out, "markdown:       %s\n", strings.Join(styles, ", "))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveConfig(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

func keyStatus(key string) string {
	if key == "" {
		return "not set (assistant runs offline)"
	}
	return "set"
}

func enabled(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
