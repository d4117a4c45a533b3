package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// JobSummary is the jobs command's per-job JSON payload.
type JobSummary struct {
	Name        string `json:"name"`
	Script      string `json:"script"`
	Description string `json:"description,omitempty"`
	FixedArgs   int    `json:"fixed_args"`
}

// NewJobsCommand creates the jobs command.
func NewJobsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jobs",
		Short:         "List the jobs in the catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobs(rootOpts, cmd)
		},
	}

	return cmd
}

func runJobs(opts *RootOptions, cmd *cobra.Command) error {
	catalog, err := loadCatalogStrict(opts.SpecsDir)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		summaries := make([]JobSummary, 0, catalog.Len())
		for _, job := range catalog.Jobs() {
			summaries = append(summaries, JobSummary{
				Name:        job.Name,
				Script:      job.Script,
				Description: job.Description,
				FixedArgs:   len(job.Args),
			})
		}
		return formatter.Success(summaries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCRIPT\tDESCRIPTION")
	for _, job := range catalog.Jobs() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", job.Name, job.Script, job.Description)
	}
	return w.Flush()
}
