package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/openmesh-network/xnode-deployer-go/internal/config"
	"github.com/openmesh-network/xnode-deployer-go/internal/handlestore"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hetzner"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hivelocity"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hyperstack"
)

// Undeploy handles the undeploy command.
//
// It loads the persisted handle record for name, deletes the remote machine
// through the configured provider, and removes the record.
func Undeploy(ctx context.Context, configPath, name string) error {
	cfg, creds, store, err := setup(ctx, configPath)
	if err != nil {
		return err
	}

	rec, err := store.Load(ctx, name)
	if err != nil {
		return err
	}
	if rec.Provider != cfg.Provider {
		return fmt.Errorf("deployment %q was created on %s, but the configuration selects %s", name, rec.Provider, cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderHivelocity:
		d, err := newHivelocity(cfg, creds)
		if err != nil {
			return err
		}
		return undeployWith[hivelocity.Handle](ctx, store, name, rec, d)
	case config.ProviderHyperstack:
		d, err := newHyperstack(cfg, creds, name)
		if err != nil {
			return err
		}
		return undeployWith[hyperstack.Handle](ctx, store, name, rec, d)
	case config.ProviderHetzner:
		d, err := newHetzner(cfg, creds, name)
		if err != nil {
			return err
		}
		return undeployWith[hetzner.Handle](ctx, store, name, rec, d)
	default:
		return errUnknownProvider(cfg.Provider)
	}
}

func undeployWith[H any](ctx context.Context, store handlestore.Store, name string, rec handlestore.Record, d deployer.Deployer[H]) error {
	var handle H
	if err := json.Unmarshal(rec.Handle, &handle); err != nil {
		return fmt.Errorf("decode handle for %q: %w", name, err)
	}

	log.Printf("Undeploying %s machine %q (handle %s)", rec.Provider, name, rec.Handle)
	if err := d.Undeploy(ctx, handle); err != nil {
		return fmt.Errorf("undeploy %q: %w", name, err)
	}

	if err := store.Delete(ctx, name); err != nil {
		return fmt.Errorf("machine deleted but removing the handle record failed: %w", err)
	}
	log.Printf("Undeployed machine %q", name)
	return nil
}
