package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/brandonbloom/gopath-go/internal/workspace"
)

const (
	toolName    = "go"
	overrideVar = "GOPATH"
	debugVar    = "GOPATH_GO_DEBUG"
)

func run(args []string) error {
	env, err := prepareEnv(os.Environ())
	if err != nil {
		return err
	}
	return dispatch(toolName, args, env)
}

// prepareEnv builds the child environment. A preset non-empty GOPATH wins
// and suppresses the workspace search entirely; otherwise the workspace
// located above the working directory is exported. Finding no workspace is
// not an error: the child simply runs with GOPATH unset. The live process
// environment is never mutated.
func prepareEnv(base []string) ([]string, error) {
	if getenv(base, overrideVar) != "" {
		return base, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := workspace.Locate(wd)
	if errors.Is(err, workspace.ErrNotFound) {
		debugf(base, "no workspace found above %s; leaving %s unset", wd, overrideVar)
		return base, nil
	}
	if err != nil {
		return nil, err
	}

	debugf(base, "using workspace %s", root)
	return withEnv(base, overrideVar, root), nil
}

// dispatch launches the tool with the child's streams connected straight
// through to this process's streams and blocks until it exits. A child that
// ran and failed surfaces as *exec.ExitError; a tool missing from PATH is a
// launch error.
func dispatch(tool string, args []string, env []string) error {
	path, err := exec.LookPath(tool)
	if err != nil {
		return fmt.Errorf("cannot find %s on PATH: %w", tool, err)
	}

	cmd := exec.Command(path, args...)
	cmd.Args = append([]string{tool}, args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func getenv(env []string, key string) string {
	prefix := key + "="
	for i := len(env) - 1; i >= 0; i-- {
		if strings.HasPrefix(env[i], prefix) {
			return strings.TrimPrefix(env[i], prefix)
		}
	}
	return ""
}

func withEnv(env []string, key, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	for _, entry := range env {
		if !strings.HasPrefix(entry, prefix) {
			out = append(out, entry)
		}
	}
	return append(out, prefix+value)
}

func debugf(env []string, format string, args ...any) {
	if getenv(env, debugVar) == "" {
		return
	}
	fmt.Fprintf(os.Stderr, "gopath-go: "+format+"\n", args...)
}
