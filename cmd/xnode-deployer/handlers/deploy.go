package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/openmesh-network/xnode-deployer-go/internal/config"
	"github.com/openmesh-network/xnode-deployer-go/internal/handlestore"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hetzner"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hivelocity"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hyperstack"
)

// Deploy handles the deploy command.
//
// It provisions a machine on the configured provider, persists the handle
// record under name, and optionally waits for the machine's address.
func Deploy(ctx context.Context, configPath, name string, wait bool) error {
	cfg, creds, store, err := setup(ctx, configPath)
	if err != nil {
		return err
	}

	if _, err := store.Load(ctx, name); err == nil {
		return fmt.Errorf("deployment %q already has a handle record; undeploy it first or pick another name", name)
	}

	switch cfg.Provider {
	case config.ProviderHivelocity:
		d, err := newHivelocity(cfg, creds)
		if err != nil {
			return err
		}
		return deployWith[hivelocity.Handle](ctx, cfg, store, name, wait, d)
	case config.ProviderHyperstack:
		d, err := newHyperstack(cfg, creds, name)
		if err != nil {
			return err
		}
		return deployWith[hyperstack.Handle](ctx, cfg, store, name, wait, d)
	case config.ProviderHetzner:
		d, err := newHetzner(cfg, creds, name)
		if err != nil {
			return err
		}
		return deployWith[hetzner.Handle](ctx, cfg, store, name, wait, d)
	default:
		return errUnknownProvider(cfg.Provider)
	}
}

func deployWith[H any](ctx context.Context, cfg *config.Config, store handlestore.Store, name string, wait bool, d deployer.Deployer[H]) error {
	log.Printf("Deploying %s machine %q", cfg.Provider, name)

	handle, err := d.Deploy(ctx, cfg.Deploy)
	if err != nil {
		return fmt.Errorf("deploy %q: %w", name, err)
	}

	raw, err := json.Marshal(handle)
	if err != nil {
		return fmt.Errorf("encode handle for %q: %w", name, err)
	}

	rec := handlestore.Record{
		Provider:  cfg.Provider,
		Handle:    raw,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Save(ctx, name, rec); err != nil {
		// The machine exists and bills; surface the handle so it is not lost.
		return fmt.Errorf("machine created (handle %s) but persisting the record failed: %w", raw, err)
	}
	log.Printf("Deployed %s machine %q: handle %s", cfg.Provider, name, raw)

	if wait {
		log.Printf("Waiting for %q to be assigned an address", name)
		addr, err := deployer.WaitForIPv4(ctx, d, handle, pollOpts(cfg)...)
		if err != nil {
			return fmt.Errorf("wait for %q: %w", name, err)
		}
		log.Printf("Machine %q is ready at %s", name, addr)
		fmt.Println(addr)
	}
	return nil
}
