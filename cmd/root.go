// Package cmd implements the CLI commands for feedpipe using Cobra.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// cfgFile holds the path to an optional YAML config file.
var cfgFile string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "feedpipe",
		Short: "feedpipe — turn feed entries into Markdown files",
		Long: `feedpipe fetches an Atom or RSS feed and writes one Markdown file per entry,
filling the fields of each entry into a template.

Usage:
  feedpipe convert <feed_url> <template_file> <output_dir> [flags]`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML config file")

	root.AddCommand(newConvertCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "feedpipe version %s\n", Version)
		},
	})
	return root
}

// Execute runs the root command.
func Execute() {
	// Variables from .env are visible to config loading; a missing file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		reportFailure(os.Stderr, err)
		os.Exit(1)
	}
}

// reportFailure prints err as a single line. Under GitHub Actions the line
// is also emitted as a workflow error annotation.
func reportFailure(w io.Writer, err error) {
	if os.Getenv("GITHUB_ACTIONS") != "" {
		fmt.Fprintf(w, "::error::%s\n", err)
	}
	fmt.Fprintln(w, err)
}
