package main

import (
	"fmt"
	"os"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/config"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/convert"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/export"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/manifest"
	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/organize"
	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	var configPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the configured export into Markdown files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			doc, exportRoot, err := loadExport(cfg)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.OutputDirectory, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			conv := &convert.Converter{
				Config:     cfg,
				ExportRoot: exportRoot,
				Quiet:      quiet,
			}

			// manifest is best effort: conversion proceeds without it
			if db, err := manifest.OpenAt(cfg.OutputDirectory); err == nil {
				defer db.Close()
				if runID, err := db.BeginRun(cfg.InputPath, cfg.OutputDirectory); err == nil {
					conv.Manifest = db
					conv.RunID = runID
				}
			} else {
				fmt.Fprintf(os.Stderr, "  WARN: manifest unavailable: %v\n", err)
			}

			fmt.Fprintf(os.Stderr, "Converting %d conversations...\n", len(doc.Conversations))
			stats := conv.Run(doc)

			if conv.Manifest != nil {
				conv.Manifest.FinishRun(conv.RunID, stats.Converted, stats.Assets, stats.Errors)
			}

			summary := organize.Summarize(doc.Conversations, cfg, cfg.OutputDirectory)
			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			fmt.Fprintf(os.Stderr, "Organization: %s\n", summary)
			fmt.Fprintf(os.Stderr, "All done! Your files are in: %s\n", cfg.OutputDirectory)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default "+config.DefaultPath+")")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress per-conversation progress lines")
	return cmd
}

// loadExport reads the configured input and resolves the export root used
// for attachment lookups.
func loadExport(cfg *config.Config) (*export.Document, string, error) {
	if cfg.InputPath == "" {
		return nil, "", fmt.Errorf("input_path is not configured (run 'chatgpt2md setup')")
	}

	info, err := os.Stat(cfg.InputPath)
	if err != nil {
		return nil, "", fmt.Errorf("input path %s: %w", cfg.InputPath, err)
	}

	if cfg.InputMode == "directory" || info.IsDir() {
		doc, err := export.LoadDir(cfg.InputPath)
		if err != nil {
			return nil, "", err
		}
		return doc, cfg.InputPath, nil
	}

	doc, err := export.LoadFile(cfg.InputPath)
	if err != nil {
		return nil, "", err
	}
	return doc, export.Root(cfg.InputPath), nil
}
