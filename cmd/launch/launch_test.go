package launch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mydove/deploy-tools/internal/launcher"
	"github.com/spf13/cobra"
)

const validEnvFile = "KAMAL_REGISTRY_PASSWORD=supersecretregistrypassword\nMONGODB_URL=mongodb://localhost:27017/mydove\n"

// newTestCommand wires a launch command against an env file with the given
// contents, delegating to tool, and returns the command plus its output
// buffer.
func newTestCommand(t *testing.T, contents, tool string, args []string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	envFile := filepath.Join(t.TempDir(), ".env")
	if contents != "" {
		if err := os.WriteFile(envFile, []byte(contents), 0o600); err != nil {
			t.Fatalf("os.WriteFile() = %v", err)
		}
	}

	t.Setenv("DEPLOY_ENV_FILE", envFile)
	t.Setenv("DEPLOY_TOOL", tool)
	t.Setenv("DEPLOY_DEFAULT_COMMAND", "deploy")
	t.Setenv("KAMAL_REGISTRY_PASSWORD", "")
	t.Setenv("MONGODB_URL", "")

	cmd := Command(context.Background())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	return cmd, out
}

func TestLaunchMissingEnvFile(t *testing.T) {
	cmd, _ := newTestCommand(t, "", "echo", nil)

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing environment file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Execute() error = %q, want missing-file message", err)
	}
}

func TestLaunchMissingRegistryPassword(t *testing.T) {
	cmd, _ := newTestCommand(t, "MONGODB_URL=mongodb://localhost:27017/mydove\n", "deploy-tools-no-such-binary", nil)

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Execute() = nil, want validation error")
	}
	if !strings.Contains(err.Error(), "KAMAL_REGISTRY_PASSWORD") {
		t.Errorf("Execute() error = %q, want it to name the missing credential", err)
	}
}

func TestLaunchForwardsArguments(t *testing.T) {
	cmd, out := newTestCommand(t, validEnvFile, "echo", []string{"app", "logs"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if !strings.Contains(out.String(), "app logs") {
		t.Errorf("Execute() output = %q, want forwarded arguments", out.String())
	}
}

func TestLaunchDefaultCommand(t *testing.T) {
	cmd, out := newTestCommand(t, validEnvFile, "echo", nil)
	t.Setenv("DEPLOY_DEFAULT_COMMAND", "version")

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if !strings.Contains(out.String(), "version") {
		t.Errorf("Execute() output = %q, want default command forwarded", out.String())
	}
}

func TestLaunchPrintsMaskedBanner(t *testing.T) {
	cmd, out := newTestCommand(t, validEnvFile, "true", nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() = %v", err)
	}

	banner := out.String()
	if !strings.Contains(banner, "Environment variables loaded successfully") {
		t.Errorf("Execute() output missing banner: %q", banner)
	}
	if strings.Contains(banner, "supersecretregistrypassword") {
		t.Errorf("Execute() output leaked the full credential: %q", banner)
	}
	if !strings.Contains(banner, "supersecre...") {
		t.Errorf("Execute() output missing masked credential preview: %q", banner)
	}
}

func TestLaunchPropagatesToolExitCode(t *testing.T) {
	cmd, _ := newTestCommand(t, validEnvFile, "sh", []string{"--", "-c", "exit 7"})

	err := cmd.Execute()
	var exitErr *launcher.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Execute() = %v, want *launcher.ExitError", err)
	}
	if exitErr.Code != 7 {
		t.Errorf("Execute() exit code = %d, want 7", exitErr.Code)
	}
}

func TestLaunchEnvFileFlagOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "override.env")
	if err := os.WriteFile(override, []byte(validEnvFile), 0o600); err != nil {
		t.Fatalf("os.WriteFile() = %v", err)
	}

	// DEPLOY_ENV_FILE points at a file that does not exist; the flag wins.
	cmd, _ := newTestCommand(t, "", "true", []string{"--env-file", override})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() = %v, want flag override to be used", err)
	}
}
