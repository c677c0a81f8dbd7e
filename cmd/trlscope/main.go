// Package main provides the trlscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOpts

	rootCmd := &cobra.Command{
		Use:   "trlscope",
		Short: "Technology readiness scoring for project submissions",
		Long: `trlscope scores project submissions against an answer dictionary,
places each project in a TRL segment and decides approval.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "Path to config file (default: .trlscope/config.yaml, searched upward)")
	f.StringVar(&opts.dictionary, "dictionary", "", "Answer dictionary CSV (overrides source.dictionary_path)")
	f.StringVar(&opts.data, "data", "", "Submissions CSV; skips the stored dataset and the remote form")
	f.StringVar(&opts.cacheDir, "cache-dir", "", "Directory for the stored dataset (default: ~/.cache/trlscope/<project>)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(
		newScoreCmd(&opts),
		newSummaryCmd(&opts),
		newExportCmd(&opts),
		newFetchCmd(&opts),
	)
	return rootCmd
}
