package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aresleonardo123/dashboard-trl/internal/pipeline"
	"github.com/aresleonardo123/dashboard-trl/pkg/report"
)

func newFetchCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Refetch submissions from the remote form and store them locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.data != "" {
				return errNoRemoteForData
			}
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync() //nolint:errcheck

			if e.cfg.Source.FormURL == "" {
				return fmt.Errorf("source.form_url is not configured")
			}

			ds, err := e.pipeline.Refresh(cmd.Context(), pipeline.TriggerCLI)
			if err != nil {
				return err
			}

			sum := report.Summarize(ds.Items)
			fmt.Fprintf(os.Stderr, "Fetched %d submissions, %d approved (%.1f%%)\n",
				sum.Total, sum.Approved, sum.ApprovedPct)
			return nil
		},
	}
}
