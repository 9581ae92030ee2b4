package dropdata

import (
	"context"
	"log"
	"os"
	"strings"

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
		Use:   "drop",
		Short: "drop database collections",
		Long:  "Drop all database collections, including the migration state",
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
	cmd.Flags().StringVarP(&c.migrationDir, "migrate-dir", "d", "file://migrations", "Directory containing migration files, using the file URI syntax")

	return cmd
}

// ValidateFlags validates and processes any input flags
func (c *command) ValidateFlags(cmd *cobra.Command) error {
	return nil
}

// Run executes the command
func (c *command) Run(ctx context.Context, cmd *cobra.Command) error {
	if err := dropAllowed(); err != nil {
		return err
	}

	conf, err := newConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to initialize config")
	}
	defer conf.close(ctx)

	log.Println("Dropping database collections...")

	if err := conf.migrateClient.Drop(c.migrationDir); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to drop database")
	}

	log.Println("Database collections dropped successfully")

	return nil
}

// dropAllowed verifies DEPLOY_ENV is set and matches one of the whitelisted
// environments before anything destructive runs.
func dropAllowed() error {
	deployEnv, ok := os.LookupEnv("DEPLOY_ENV")
	if !ok {
		return errors.New("DEPLOY_ENV environment variable is not set. This will not run if it is not set")
	}
	allowedEnvsStr, ok := os.LookupEnv("DB_DROP_ENV_WHITELIST")
	if !ok {
		return errors.New("DB_DROP_ENV_WHITELIST environment variable is not set. This will not run if it is not set")
	}
	allowedEnvs := make(map[string]bool)
	for env := range strings.SplitSeq(allowedEnvsStr, ",") {
		allowedEnvs[strings.TrimSpace(env)] = true
	}
	if !allowedEnvs[deployEnv] {
		return errors.Newf("dropping data is only allowed in allowed environments (%s), current environment: %s", allowedEnvsStr, deployEnv)
	}

	return nil
}
