// Package cli implements the gopath-go shim: it locates the legacy GOPATH
// workspace enclosing the working directory, exports it as GOPATH for the
// child only, and delegates to the go tool with every argument forwarded
// verbatim.
//
// The process exit code is the child's exit code, unchanged. A child killed
// by a signal exits 128+signal, the shell convention. Internal failures (go
// missing from PATH, filesystem faults during the workspace search) print a
// fatal: message to stderr and exit 127, the shell's command-not-found
// convention, so they stay distinguishable from ordinary go failures.
package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const fatalExitCode = 127

var colorFatal = color.New(color.FgRed, color.Bold).SprintFunc()

// Main runs the shim with the given arguments and returns the process exit
// code.
func Main(args []string) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if code, ok := childExitCode(err); ok {
		return code
	}
	fmt.Fprintln(os.Stderr, colorFatal("fatal:"), err)
	return fatalExitCode
}

// newRootCommand builds the pass-through command. Flag parsing and shell
// completion are disabled so that -h, completion, and everything else reach
// the go tool untouched.
func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "gopath-go [go arguments...]",
		Short:              "Run the go tool with GOPATH pointed at the enclosing legacy workspace",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		// cobra still reserves the hidden __complete word for shell
		// integration; the go tool has no such subcommand.
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args)
		},
	}
}

// childExitCode extracts the exit code when err reports a child that ran and
// failed, as opposed to a child that could not be launched. Signal deaths
// report 128+signal rather than the -1 that ExitCode yields for them.
func childExitCode(err error) (int, bool) {
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return 0, false
	}
	if code := ee.ExitCode(); code >= 0 {
		return code, true
	}
	if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), true
	}
	return fatalExitCode, true
}
