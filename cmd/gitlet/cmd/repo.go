// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/dlogger"
	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

func loadConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if configErr != nil {
		return cfg, errors.Wrap(configErr, "reading config file")
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decoding config")
	}
	return cfg, nil
}

func repoOptions() (engine.Options, error) {
	cfg, err := loadConfig()
	if err != nil {
		return engine.Options{}, err
	}
	l, err := dlogger.GetLogger(cfg.LogLevel)
	if err != nil {
		return engine.Options{}, errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	return engine.Options{
		Config: cfg,
		Logger: l,
	}, nil
}

// runWithRepo opens the repository of the working directory and runs an action on it
func runWithRepo(action func(context.Context, *engine.Repo) error) error {
	ctx := context.Background()
	opts, err := repoOptions()
	if err != nil {
		return err
	}
	defer func() {
		_ = opts.Logger.Sync()
	}()

	repo, err := engine.Open(ctx, opts)
	if err != nil {
		return err
	}
	return multierr.Append(action(ctx, repo), repo.Close())
}
