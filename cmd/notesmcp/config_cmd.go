package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/saedabdu/mcp-apple-notes/internal/cli"
	"github.com/saedabdu/mcp-apple-notes/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage notesmcp configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  "Prints the configuration after file and environment overrides are applied.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return toml.NewEncoder(os.Stdout).Encode(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Generate a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path := config.ConfigFilePath(home)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", cli.ShortenHome(path))
			}
			written, err := config.GenerateConfig(home)
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", cli.ShortenHome(written))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print path to config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			fmt.Println(cli.ShortenHome(config.ConfigFilePath(home)))
			return nil
		},
	})

	return cmd
}
