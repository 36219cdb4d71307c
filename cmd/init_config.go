package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/reltime/internal/config"
)

func newInitConfigCmd(f *flags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default config file",
		Long: `Write the commented default config file to --config, or to
~/.config/reltime/config.yaml.

Option flags given with init-config are saved into the new file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInitConfig(cmd, f, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func runInitConfig(cmd *cobra.Command, f *flags, force bool) error {
	path := f.configPath()
	if path == "" {
		return errors.New("no config path: pass --config")
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	if o := f.overrides(cmd); !o.IsZero() {
		if err := config.SaveOptions(path, o); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
