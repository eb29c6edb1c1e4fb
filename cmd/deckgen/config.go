package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/fredcamaral/deckgen/internal/adapters/secondary/config"
	"github.com/fredcamaral/deckgen/internal/domain/services"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage deckgen configuration",
	}

	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var global, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a deckgen.toml with default values into the current directory,
or the global config file with --global. Existing files are kept unless
--force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewTOMLLoader()
			svc := services.NewConfigService(loader, config.NewConfigMerger())

			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolving working directory: %w", err)
			}

			path := loader.GetLocalPath(wd)
			if global {
				path = loader.GetGlobalPath()
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}

			if global {
				_, err = svc.CreateGlobalConfig(cmd.Context())
			} else {
				_, err = svc.CreateLocalConfig(cmd.Context(), wd)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Configuration written: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Write the global config file instead of ./deckgen.toml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			encoder := toml.NewEncoder(cmd.OutOrStdout())
			encoder.Indent = "  "
			return encoder.Encode(cfg)
		},
	}
}
