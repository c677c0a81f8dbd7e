package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aresleonardo123/dashboard-trl/pkg/surface"
)

func newScoreCmd(opts *globalOpts) *cobra.Command {
	var (
		outputFmt string
		insights  bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score every submission and print the results",
		Long:  `Loads the answer dictionary and the submissions, scores each project and renders the report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := rendererFor(outputFmt, insights)
			if err != nil {
				return err
			}

			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync() //nolint:errcheck

			ds, err := e.pipeline.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("scoring: %w", err)
			}

			rep := surface.NewReport(ds.Items, ds.InsightsFor, time.Now())
			if err := renderer.Render(os.Stdout, rep); err != nil {
				return fmt.Errorf("rendering: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFmt, "format", "text", "Output format: text, json or markdown")
	cmd.Flags().BoolVar(&insights, "insights", false, "Show per-project insights in text output")

	return cmd
}

func rendererFor(format string, insights bool) (surface.Renderer, error) {
	switch format {
	case "text":
		return &surface.TerminalRenderer{Insights: insights}, nil
	case "json":
		return &surface.JSONRenderer{}, nil
	case "markdown", "md":
		return &surface.MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text, json or markdown)", format)
	}
}
