package cmd

import (
	"context"

	"github.com/go-playground/errors/v5"
	"github.com/mydove/deploy-tools/cmd/check"
	"github.com/mydove/deploy-tools/cmd/db"
	"github.com/mydove/deploy-tools/cmd/launch"
	"github.com/spf13/cobra"
)

// Execute configures the root command for the application and runs the CLI tool
func Execute(ctx context.Context) error {
	cmd := &cobra.Command{
		Use:          "deploy-tools",
		Short:        "A command line to be used for executing different actions during a deployment process",
		SilenceUsage: true,
	}

	cmd.AddCommand(launch.Command(ctx))
	cmd.AddCommand(check.Command(ctx))
	cmd.AddCommand(db.Command(ctx))

	if err := cmd.Execute(); err != nil {
		return errors.Wrap(err, "cmd.Execute()")
	}

	return nil
}
