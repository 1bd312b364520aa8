package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openmesh-network/xnode-deployer-go/internal/config"
	"github.com/openmesh-network/xnode-deployer-go/internal/handlestore"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hetzner"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hivelocity"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer/hyperstack"
)

// IPv4 handles the ipv4 command.
//
// It loads the persisted handle record for name and prints the machine's
// public IPv4 address. "pending" means the provider supports address lookup
// but has not assigned one yet; that is not an error.
func IPv4(ctx context.Context, configPath, name string) error {
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
		return ipv4With[hivelocity.Handle](ctx, name, rec, d)
	case config.ProviderHyperstack:
		d, err := newHyperstack(cfg, creds, name)
		if err != nil {
			return err
		}
		return ipv4With[hyperstack.Handle](ctx, name, rec, d)
	case config.ProviderHetzner:
		d, err := newHetzner(cfg, creds, name)
		if err != nil {
			return err
		}
		return ipv4With[hetzner.Handle](ctx, name, rec, d)
	default:
		return errUnknownProvider(cfg.Provider)
	}
}

func ipv4With[H any](ctx context.Context, name string, rec handlestore.Record, d deployer.Deployer[H]) error {
	var handle H
	if err := json.Unmarshal(rec.Handle, &handle); err != nil {
		return fmt.Errorf("decode handle for %q: %w", name, err)
	}

	res, err := d.IPv4(ctx, handle)
	if err != nil {
		return fmt.Errorf("read address of %q: %w", name, err)
	}

	addr, supported := res.Get()
	switch {
	case !supported:
		fmt.Println("not supported")
	case !addr.IsValid():
		fmt.Println("pending")
	default:
		fmt.Println(addr)
	}
	return nil
}
