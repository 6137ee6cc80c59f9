package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/export"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/manifest"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, export location, output tree and manifest stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Input ===")
			checkDir("Export root", cfg.InputPath)
			if export.IsExportDir(cfg.InputPath) {
				fmt.Printf("  %s: OK\n", export.ConversationsFile)
			} else if info, err := os.Stat(cfg.InputPath); err == nil && !info.IsDir() {
				fmt.Printf("  Input file: %s\n", cfg.InputPath)
			} else {
				fmt.Printf("  %s: NOT FOUND\n", export.ConversationsFile)
			}

			fmt.Println("\n=== Output ===")
			checkDir("Output", cfg.OutputDirectory)
			fmt.Printf("  Organization: %s\n", cfg.OrganizationMode)

			fmt.Println("\n=== Manifest ===")
			dbPath := filepath.Join(cfg.OutputDirectory, manifest.FileName)
			fmt.Printf("  Path: %s\n", dbPath)
			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'chatgpt2md convert' first)")
				return nil
			}

			db, err := manifest.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open manifest: %w", err)
			}
			defer db.Close()

			runs, err := db.RunCount()
			if err != nil {
				return fmt.Errorf("count runs: %w", err)
			}
			files, err := db.FileCount()
			if err != nil {
				return fmt.Errorf("count files: %w", err)
			}
			assets, err := db.AssetCount()
			if err != nil {
				return fmt.Errorf("count assets: %w", err)
			}

			fmt.Printf("  Runs:   %d\n", runs)
			fmt.Printf("  Files:  %d\n", files)
			fmt.Printf("  Assets: %d\n", assets)

			if last, err := db.LastRun(); err == nil && last != nil {
				fmt.Printf("\n=== Last Run ===\n")
				fmt.Printf("  Started:       %s\n", last.StartedAt)
				fmt.Printf("  Finished:      %s\n", last.FinishedAt)
				fmt.Printf("  Conversations: %d\n", last.Conversations)
				fmt.Printf("  Assets:        %d\n", last.Assets)
				fmt.Printf("  Errors:        %d\n", last.Errors)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default "+config.DefaultPath+")")
	return cmd
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
