package bootstrap

import (
	"context"

	"github.com/go-playground/errors/v5"
	"github.com/mydove/deploy-tools/internal/mongomigrate"
	"github.com/sethvargo/go-envconfig"
)

type envConfig struct {
	MongoURL string `env:"MONGODB_URL,required"`
}

type config struct {
	migrateClient *mongomigrate.Client
}

func newConfig(ctx context.Context) (*config, error) {
	var envVars envConfig
	if err := envconfig.Process(ctx, &envVars); err != nil {
		return nil, errors.Wrap(err, "envconfig.Process()")
	}

	db, err := mongomigrate.Connect(ctx, envVars.MongoURL)
	if err != nil {
		return nil, errors.Wrapf(err, "mongomigrate.Connect()")
	}

	return &config{
		migrateClient: db,
	}, nil
}

func (c *config) close(ctx context.Context) {
	c.migrateClient.Close(ctx)
}
