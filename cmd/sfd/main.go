package main

import (
	"fmt"
	"os"

	"github.com/DLii-Research/snake-fungal-disease/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// A child's non-zero exit status travels as a message-less ExitError;
		// propagate the code without adding noise.
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
