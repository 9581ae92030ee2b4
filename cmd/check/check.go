// Package check runs the deployment preflight without invoking the tool.
package check

import (
	"context"
	"fmt"

	"github.com/go-playground/errors/v5"
	"github.com/mydove/deploy-tools/internal/envfile"
	"github.com/mydove/deploy-tools/internal/launcher"
	"github.com/spf13/cobra"
)

// Command returns the configured command
func Command(ctx context.Context) *cobra.Command {
	cli := command{}

	return cli.Setup(ctx)
}

type command struct {
	envFile string
}

// Setup returns the configured cli command
func (c *command) Setup(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the deployment environment",
		Long:  "Load the environment file and validate the deployment variables without invoking the deployment tool. Exits zero when the environment is deployable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.ValidateFlags(); err != nil {
				return err
			}

			return c.Run(ctx, cmd)
		},
	}

	cmd.Flags().
		StringVarP(&c.envFile, "env-file", "e", "", "Path to the environment file (defaults to DEPLOY_ENV_FILE, then .env)")

	return cmd
}

// ValidateFlags validates and processes any input flags
func (c *command) ValidateFlags() error {
	return nil
}

// Run executes the command
func (c *command) Run(ctx context.Context, cmd *cobra.Command) error {
	conf, err := newConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to initialize config")
	}
	if c.envFile != "" {
		conf.EnvFile = c.envFile
	}

	vars, err := envfile.Load(conf.EnvFile)
	if err != nil {
		return errors.Wrap(err, "envfile.Load()")
	}

	l := launcher.New("", vars)
	l.Stdout = cmd.OutOrStdout()
	l.Stderr = cmd.ErrOrStderr()

	if err := l.Validate(); err != nil {
		return err
	}
	l.Banner()

	fmt.Fprintln(cmd.OutOrStdout(), "Environment is ready to deploy")

	return nil
}
