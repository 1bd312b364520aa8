// Package handlers implements the CLI command logic: it wires configuration
// and credentials into a provider adapter and a handle store, runs the
// requested lifecycle operation, and keeps the persisted handle records in
// sync with the remote state.
package handlers

import (
	"context"
	"fmt"

	"github.com/openmesh-network/xnode-deployer-go/internal/config"
	"github.com/openmesh-network/xnode-deployer-go/internal/handlestore"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hetzner"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hivelocity"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hyperstack"
)

// newStore builds the handle store selected by the configuration. Replaced
// in tests.
var newStore = func(ctx context.Context, cfg *config.Config, creds *config.Credentials) (handlestore.Store, error) {
	if s3cfg := cfg.State.S3; s3cfg != nil {
		return handlestore.NewS3Store(ctx, handlestore.S3Options{
			Endpoint:  s3cfg.Endpoint,
			Region:    s3cfg.Region,
			Bucket:    s3cfg.Bucket,
			Prefix:    s3cfg.Prefix,
			AccessKey: creds.S3AccessKey,
			SecretKey: creds.S3SecretKey,
		})
	}
	return handlestore.NewFileStore(cfg.State.Dir)
}

func setup(ctx context.Context, configPath string) (*config.Config, *config.Credentials, handlestore.Store, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := newStore(ctx, cfg, creds)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, creds, store, nil
}

func newHivelocity(cfg *config.Config, creds *config.Credentials) (*hivelocity.Deployer, error) {
	apiKey, err := creds.ForProvider(config.ProviderHivelocity)
	if err != nil {
		return nil, err
	}

	class := hivelocity.BareMetal
	if cfg.Hivelocity.Class == "compute" {
		class = hivelocity.Compute
	}
	return hivelocity.New(apiKey, hivelocity.Hardware{
		Class:        class,
		LocationName: cfg.Hivelocity.LocationName,
		Period:       cfg.Hivelocity.Period,
		Tags:         cfg.Hivelocity.Tags,
		ProductID:    cfg.Hivelocity.ProductID,
		Hostname:     cfg.Hivelocity.Hostname,
	})
}

func newHyperstack(cfg *config.Config, creds *config.Credentials, name string) (*hyperstack.Deployer, error) {
	apiKey, err := creds.ForProvider(config.ProviderHyperstack)
	if err != nil {
		return nil, err
	}

	machineName := cfg.Hyperstack.Name
	if machineName == "" {
		machineName = name
	}
	return hyperstack.New(apiKey, hyperstack.Hardware{
		Name:            machineName,
		EnvironmentName: cfg.Hyperstack.EnvironmentName,
		FlavorName:      cfg.Hyperstack.FlavorName,
		KeyName:         cfg.Hyperstack.KeyName,
	}), nil
}

func newHetzner(cfg *config.Config, creds *config.Credentials, name string) (*hetzner.Deployer, error) {
	token, err := creds.ForProvider(config.ProviderHetzner)
	if err != nil {
		return nil, err
	}

	machineName := cfg.Hetzner.Name
	if machineName == "" {
		machineName = name
	}
	return hetzner.New(token, hetzner.Hardware{
		Name:       machineName,
		ServerType: cfg.Hetzner.ServerType,
		Image:      cfg.Hetzner.Image,
		Location:   cfg.Hetzner.Location,
		SSHKeys:    cfg.Hetzner.SSHKeys,
		Labels:     cfg.Hetzner.Labels,
	}), nil
}

func pollOpts(cfg *config.Config) []deployer.PollOption {
	return []deployer.PollOption{
		deployer.WithPollInterval(cfg.Poll.Interval()),
		deployer.WithMaxAttempts(cfg.Poll.MaxAttempts),
	}
}

// errUnknownProvider should be unreachable after config validation.
func errUnknownProvider(provider string) error {
	return fmt.Errorf("unknown provider %q", provider)
}
