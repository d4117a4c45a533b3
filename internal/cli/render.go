package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DLii-Research/snake-fungal-disease/internal/jobspec"
	"github.com/DLii-Research/snake-fungal-disease/internal/launcher"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions

	// Lookup allows overriding the environment lookup (for testing).
	Lookup launcher.LookupFunc
}

// RenderedCommand is the render command's JSON payload.
type RenderedCommand struct {
	Job      string   `json:"job"`
	LaunchID string   `json:"launch_id"`
	Argv     []string `json:"argv"`
}

// String renders the command line for text output.
func (r RenderedCommand) String() string {
	return strings.Join(r.Argv, " ")
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <job> [-- extra args...]",
		Short: "Print the command line a launch would execute",
		Long: `Print the exact command line "sfd launch" would execute, without spawning
anything. Rendering works before the environment bootstrap has run, so it is
safe for inspecting a launch on a login node.

Argument assembly is deterministic: rendering twice with the same environment
and arguments prints the same command line.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], args[1:], cmd)
		},
	}

	return cmd
}

func runRender(opts *RenderOptions, jobName string, extra []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	catalog, err := loadCatalogStrict(opts.SpecsDir)
	if err != nil {
		return err
	}
	job, err := lookupJob(catalog, jobName)
	if err != nil {
		return err
	}

	env := launcher.FromOS(lookup)
	l := launcher.New(env)

	command, err := l.Assemble(launcher.Request{Job: job, Extra: extra})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to assemble command", err)
	}

	argv := command.Argv()
	rendered := RenderedCommand{
		Job:      job.Name,
		LaunchID: jobspec.LaunchID(job.Name, env.ScriptPath(job.Script), argv),
		Argv:     argv,
	}
	formatter.VerboseLog("launch id: %s", rendered.LaunchID)
	return formatter.Success(rendered)
}
