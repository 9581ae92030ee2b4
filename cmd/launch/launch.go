// Package launch wraps the external deployment tool: load the environment
// file, validate the required secrets, forward the arguments.
package launch

import (
	"context"

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
		Use:   "launch [-- tool arguments...]",
		Short: "Launch a deployment through the external tool",
		Long:  "Load the environment file, validate the deployment variables, and forward all arguments to the deployment tool. With no arguments the default command is forwarded instead.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.ValidateFlags(); err != nil {
				return err
			}

			return c.Run(ctx, cmd, args)
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
func (c *command) Run(ctx context.Context, cmd *cobra.Command, args []string) error {
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

	l := launcher.New(conf.Tool, vars)
	l.Stdout = cmd.OutOrStdout()
	l.Stderr = cmd.ErrOrStderr()

	if err := l.Validate(); err != nil {
		return err
	}
	l.Banner()

	forward, err := launcher.ResolveArgs(args, conf.DefaultCommand)
	if err != nil {
		return errors.Wrap(err, "launcher.ResolveArgs()")
	}

	return l.Run(ctx, forward)
}
