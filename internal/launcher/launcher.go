// Package launcher validates a deployment environment and delegates the
// deployment itself to the external orchestration tool.
package launcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/go-playground/errors/v5"
	"github.com/mattn/go-shellwords"
	"github.com/mydove/deploy-tools/internal/envfile"
)

const (
	// RegistryPasswordVar is the registry credential the deployment tool uses
	// to push container images.
	RegistryPasswordVar = "KAMAL_REGISTRY_PASSWORD"
	// MongoURLVar is the connection string the deployed service reads.
	MongoURLVar = "MONGODB_URL"

	registryPreviewLen = 10
	mongoPreviewLen    = 20
)

// ExitError carries the exit status of the delegated tool so callers can
// propagate it unchanged.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("deployment tool exited with status %d", e.Code)
}

// Launcher drives a single deployment invocation: validate the loaded
// environment, print the masked confirmation, run the tool.
type Launcher struct {
	Tool   string
	Env    map[string]string // values loaded from the environment file
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// New returns a Launcher for tool with the environment-file values in env,
// attached to the process stdio.
func New(tool string, env map[string]string) *Launcher {
	return &Launcher{
		Tool:   tool,
		Env:    env,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
}

// Validate checks the required deployment variables after the environment
// file has been loaded.
func (l *Launcher) Validate() error {
	if envfile.Get(l.Env, RegistryPasswordVar) == "" {
		return errors.Newf("%s is not set in the environment file", RegistryPasswordVar)
	}

	// Carried over from the deploy script this tool replaces: the script
	// tested the literal name rather than the value, so this check cannot
	// fail. TODO: confirm whether MONGODB_URL was meant to be validated by
	// value and tighten this to envfile.Get(l.Env, MongoURLVar).
	if MongoURLVar == "" {
		return errors.Newf("%s is not set in the environment file", MongoURLVar)
	}

	return nil
}

// Banner writes the post-validation confirmation with masked previews. The
// full secret values are never printed.
func (l *Launcher) Banner() {
	fmt.Fprintln(l.Stdout, "Environment variables loaded successfully")
	fmt.Fprintf(l.Stdout, "  %s: %s\n", RegistryPasswordVar, Preview(envfile.Get(l.Env, RegistryPasswordVar), registryPreviewLen))
	fmt.Fprintf(l.Stdout, "  %s: %s\n", MongoURLVar, Preview(envfile.Get(l.Env, MongoURLVar), mongoPreviewLen))
}

// Preview truncates a secret to its first n bytes for diagnostic output,
// always followed by an ellipsis.
func Preview(v string, n int) string {
	if len(v) > n {
		v = v[:n]
	}

	return v + "..."
}

// ResolveArgs returns the arguments to forward to the tool: args as given,
// or defaultCommand split with shell word rules when none were supplied.
func ResolveArgs(args []string, defaultCommand string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	split, err := shellwords.Parse(defaultCommand)
	if err != nil {
		return nil, errors.Wrapf(err, "shellwords.Parse(): %s", defaultCommand)
	}
	if len(split) == 0 {
		return nil, errors.New("default command is empty")
	}

	return split, nil
}

// Run invokes the tool with the forwarded arguments and the merged
// environment, blocking until it completes. A non-zero exit from the tool is
// returned as *ExitError; every other failure is an ordinary error.
func (l *Launcher) Run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, l.Tool, args...)
	cmd.Env = envfile.Environ(os.Environ(), l.Env)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	cmd.Stdin = l.Stdin

	log.Printf("Running: %s %s", l.Tool, strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}

		return errors.Wrapf(err, "exec: %s", l.Tool)
	}

	return nil
}
