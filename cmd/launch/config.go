package launch

import (
	"context"

	"github.com/go-playground/errors/v5"
	"github.com/sethvargo/go-envconfig"
)

type envConfig struct {
	EnvFile        string `env:"DEPLOY_ENV_FILE,default=.env"`
	Tool           string `env:"DEPLOY_TOOL,default=kamal"`
	DefaultCommand string `env:"DEPLOY_DEFAULT_COMMAND,default=deploy"`
}

func newConfig(ctx context.Context) (*envConfig, error) {
	var envVars envConfig
	if err := envconfig.Process(ctx, &envVars); err != nil {
		return nil, errors.Wrap(err, "envconfig.Process()")
	}

	return &envVars, nil
}
