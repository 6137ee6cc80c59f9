package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "chatgpt2md",
		Short:   "Convert ChatGPT export JSON into per-conversation Markdown files",
		Version: version,
	}

	rootCmd.AddCommand(setupCmd())
	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
