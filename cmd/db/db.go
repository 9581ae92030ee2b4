package db

import (
	"context"

	"github.com/mydove/deploy-tools/cmd/db/mongo"
	"github.com/spf13/cobra"
)

type command struct{}

// Command returns the configured command
func Command(ctx context.Context) *cobra.Command {
	cli := command{}

	return cli.Setup(ctx)
}

func (command) Setup(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Commands for database operations during a deployment",
		Long:  "Commands for database operations during a deployment, such as bootstrapping and dropping data",
	}

	cmd.AddCommand(mongo.Command(ctx))

	return cmd
}
