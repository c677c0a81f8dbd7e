package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aresleonardo123/dashboard-trl/pkg/report"
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

type summaryOutput struct {
	Metrics report.Metrics `json:"metrics"`
	Summary report.Summary `json:"summary"`
}

func newSummaryCmd(opts *globalOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print headline metrics and aggregate highlights",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync() //nolint:errcheck

			ds, err := e.pipeline.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("scoring: %w", err)
			}

			out := summaryOutput{
				Metrics: report.Headline(ds.Items),
				Summary: report.Summarize(ds.Items),
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printSummary(os.Stdout, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func printSummary(w io.Writer, out summaryOutput) {
	m := out.Metrics
	fmt.Fprintf(w, "Forms:            %d\n", m.Forms)
	fmt.Fprintf(w, "Highest TRL:      %d\n", m.MaxLevel)
	fmt.Fprintf(w, "Approved:         %d\n", m.Approved)
	fmt.Fprintf(w, "Mentor yes/no:    %d/%d\n", m.MentorYes, m.MentorNo)
	fmt.Fprintf(w, "Best total:       %.1f\n", m.MaxTotal)
	fmt.Fprintf(w, "Common language:  %s\n", m.CommonLanguage)
	for _, seg := range scoring.Segments {
		if name, ok := m.TopBySegment[seg]; ok {
			fmt.Fprintf(w, "Top %-13s %s\n", string(seg)+":", name)
		}
	}
	fmt.Fprintln(w)
	for _, h := range out.Summary.Highlights {
		fmt.Fprintf(w, "  • %s\n", h)
	}
}
