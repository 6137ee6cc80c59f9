package main

import (
	"fmt"
	"os"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/wizard"
	"github.com/spf13/cobra"
)

func setupCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactive wizard that gathers and saves the conversion configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := wizard.Run(config.Default())
			if err != nil {
				return err
			}

			if err := config.Save(cfg, configPath); err != nil {
				return err
			}

			path := configPath
			if path == "" {
				path = config.DefaultPath
			}
			fmt.Fprintln(os.Stderr, "Setup complete.")
			fmt.Fprintf(os.Stderr, "  Config:       %s\n", path)
			fmt.Fprintf(os.Stderr, "  Input:        %s\n", cfg.InputPath)
			fmt.Fprintf(os.Stderr, "  Output:       %s\n", cfg.OutputDirectory)
			fmt.Fprintf(os.Stderr, "  Organization: %s\n", cfg.OrganizationMode)
			fmt.Fprintln(os.Stderr, "Run 'chatgpt2md convert' to convert.")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default "+config.DefaultPath+")")
	return cmd
}
