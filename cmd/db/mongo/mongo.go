package mongo

import (
	"context"

	"github.com/mydove/deploy-tools/cmd/db/mongo/bootstrap"
	"github.com/mydove/deploy-tools/cmd/db/mongo/dropdata"
	"github.com/mydove/deploy-tools/cmd/db/mongo/ping"
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
		Use:   "mongo",
		Short: "Commands for mongo database operations during a deployment",
		Long:  "Commands for mongo database operations during a deployment, such as bootstrapping, dropping data, and connectivity checks",
	}

	cmd.AddCommand(bootstrap.Command(ctx))
	cmd.AddCommand(dropdata.Command(ctx))
	cmd.AddCommand(ping.Command(ctx))

	return cmd
}
