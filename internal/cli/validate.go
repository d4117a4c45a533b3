package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Jobs   int      `json:"jobs"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [specs-dir]",
		Short: "Validate job specs without launching",
		Long: `Validate the CUE job catalog without launching anything.

Performs CUE loading, structural decoding, and schema checks (flag format,
duplicate flags, script paths, resource requests), reporting every error
found rather than stopping at the first.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := rootOpts.SpecsDir
			if len(args) == 1 {
				dir = args[0]
			}
			return runValidate(rootOpts, dir, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, specsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, errs := LoadCatalog(specsDir)

	// Handle load errors (directory not found, no files, etc.)
	if result == nil && len(errs) > 0 {
		var loadErr *LoadError
		code := ErrCodeGeneric
		if errors.As(errs[0], &loadErr) {
			code = loadErr.Code
		}
		if ferr := formatter.Error(code, errs[0].Error(), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitCommandError, "validation could not run")
	}

	formatter.VerboseLog("Found %d CUE file(s)", result.FileCount)

	vr := ValidationResult{
		Valid: len(errs) == 0,
		Jobs:  result.Catalog.Len(),
	}
	for _, err := range errs {
		vr.Errors = append(vr.Errors, err.Error())
	}

	if !vr.Valid {
		if ferr := formatter.Error("INVALID_SPECS", "job specs failed validation", vr.Errors); ferr != nil {
			return ferr
		}
		return NewExitError(ExitFailure, "validation failed")
	}

	if opts.Format == "json" {
		return formatter.Success(vr)
	}
	formatter.VerboseLog("All %d job(s) valid", vr.Jobs)
	return formatter.Success("OK")
}
