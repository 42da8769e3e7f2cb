package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/mailsearch/cli/internal/config"
)

// ConfigCmd returns the `mailsearch config` command group.
func ConfigCmd(g *Globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the CLI configuration",
	}
	cmd.AddCommand(configShowCmd(g), configInitCmd(g))
	return cmd
}

func configShowCmd(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(g, func(env *Env) error {
				data, err := yaml.Marshal(env.Config)
				if err != nil {
					return fmt.Errorf("marshal config: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
}

func configInitCmd(g *Globals) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(config.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", config.Path())
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}
			return withEnv(g, func(env *Env) error {
				if err := env.Config.Save(); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				env.Logger.Info("config written", "path", config.Path())
				fmt.Fprintf(cmd.OutOrStdout(), "config saved to %s\n", config.Path())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
