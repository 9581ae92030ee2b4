package bootstrap

import (
	"context"
	"log"

	"github.com/go-playground/errors/v5"
	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

// Command returns the configured command
func Command(ctx context.Context) *cobra.Command {
	cli := command{}

	return cli.Setup(ctx)
}

type command struct {
	migrationDir string
}

// Setup returns the configured cli command
func (c *command) Setup(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Bootstrap database by running migrations",
		Long:  "Bootstrap database by running all up migrations from the migration directory against the database behind MONGODB_URL",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if err := c.ValidateFlags(cmd); err != nil {
				return err
			}

			if err := c.Run(ctx, cmd); err != nil {
				return errors.Wrap(err, "command.Run()")
			}

			return nil
		},
	}

	cmd.Flags().
		StringVar(&c.migrationDir, "migrate-dir", "file://migrations", "Directory containing migration files, using the file URI syntax")

	return cmd
}

func (c *command) ValidateFlags(cmd *cobra.Command) error {
	return nil
}

func (c *command) Run(ctx context.Context, cmd *cobra.Command) error {
	conf, err := newConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to initialize config")
	}
	defer conf.close(ctx)

	log.Printf("Running bootstrap migrations with dir: %s \n", c.migrationDir)
	if err := conf.migrateClient.MigrateUp(c.migrationDir); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to run migrations")
	} else if errors.Is(err, migrate.ErrNoChange) {
		log.Println("No new Migration scripts found. No changes applied.")
	} else {
		log.Println("Ran migrations successfully")
	}

	return nil
}
