package main

import (
	"fmt"
	"os"

	"github.com/daugaard47/ChatGPT-Conversations-To-Markdown/internal/export"
	"github.com/spf13/cobra"
)

func extractCmd() *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "extract <zip>",
		Short: "Extract a ChatGPT export ZIP and print the resulting export directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := export.ExtractZip(args[0], destDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Extracted. Found %s at: %s\n", export.ConversationsFile, root)
			fmt.Println(root)
			return nil
		},
	}

	cmd.Flags().StringVar(&destDir, "dest", "", "Extraction directory (default: ChatGPT_Export next to the archive)")
	return cmd
}
