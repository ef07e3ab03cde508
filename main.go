package main

import (
	"os"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/cmd"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/errors"
	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/shutdown"
)

func main() {
	os.Exit(run())
}

// run delegates to the CLI and maps the result to an exit code. It exists
// so the shutdown hooks can be deferred: they must restore any package
// manager configuration still swapped even when a command panics, and
// os.Exit would skip deferred calls in main itself.
func run() int {
	defer shutdown.Run()

	if err := cmd.Execute(); err != nil {
		return errors.GetExitCode(err)
	}
	return errors.ExitSuccess
}
