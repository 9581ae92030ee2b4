package ping

import (
	"context"
	"log"

	"github.com/go-playground/errors/v5"
	"github.com/mydove/deploy-tools/internal/mongomigrate"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
)

// Command returns the configured command
func Command(ctx context.Context) *cobra.Command {
	cli := command{}

	return cli.Setup(ctx)
}

type command struct{}

// Setup returns the configured cli command
func (c *command) Setup(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Verify database connectivity",
		Long:  "Verify the database behind MONGODB_URL is reachable before a deployment proceeds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.Run(ctx, cmd); err != nil {
				return errors.Wrap(err, "command.Run()")
			}

			return nil
		},
	}

	return cmd
}

// Run executes the command
func (c *command) Run(ctx context.Context, cmd *cobra.Command) error {
	var envVars struct {
		MongoURL string `env:"MONGODB_URL,required"`
	}
	if err := envconfig.Process(ctx, &envVars); err != nil {
		return errors.Wrap(err, "envconfig.Process()")
	}

	db, err := mongomigrate.Connect(ctx, envVars.MongoURL)
	if err != nil {
		return errors.Wrap(err, "mongomigrate.Connect()")
	}
	defer db.Close(ctx)

	if err := db.Ping(ctx); err != nil {
		return errors.Wrap(err, "mongomigrate.Client.Ping()")
	}

	log.Println("Database is reachable")

	return nil
}
