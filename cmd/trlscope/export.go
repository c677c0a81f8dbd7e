package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aresleonardo123/dashboard-trl/pkg/report"
	"github.com/aresleonardo123/dashboard-trl/pkg/surface"
)

var errNoApproved = errors.New("no approved projects to export")

func newExportCmd(opts *globalOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write approved projects to a spreadsheet",
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

			approved := report.Approved(ds.Items)
			if len(approved) == 0 {
				return errNoApproved
			}
			projects := make([]surface.ProjectView, 0, len(approved))
			for _, it := range approved {
				projects = append(projects, surface.NewProjectView(it, ds.InsightsFor(it)))
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := surface.WriteApprovedXLSX(f, projects); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", output, err)
			}

			fmt.Fprintf(os.Stderr, "Exported %d approved projects to %s\n", len(projects), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "approved_projects.xlsx", "Output spreadsheet path")
	return cmd
}
