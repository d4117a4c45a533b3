package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// SpecsDir is where the CUE job catalog lives.
	SpecsDir string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sfd launcher CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sfd",
		Short: "sfd - training-job launcher for DNA deep-learning experiments",
		Long: `sfd launches the snake-fungal-disease training jobs (DNABERT pretraining,
taxonomy fine-tuning, SetBERT pretraining, autoencoders, GAN variants) from a
CUE job catalog, replacing the per-job batch shell scripts.

Every launch checks that the environment bootstrap has run, assembles a
deterministic command line (fixed catalog arguments, then caller extras
verbatim), spawns exactly one child process, and propagates its exit status
unchanged.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.SpecsDir, "specs", "specs", "directory of CUE job specs")

	// Add subcommands
	cmd.AddCommand(NewLaunchCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewSubmitCommand(opts))
	cmd.AddCommand(NewJobsCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
