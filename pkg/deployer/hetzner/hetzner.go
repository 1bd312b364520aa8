// Package hetzner implements the deployer contract against the Hetzner
// Cloud API, via the official SDK rather than raw JSON: the SDK already
// produces typed responses, so the adapter only maps them onto the uniform
// lifecycle results.
package hetzner

import (
	"context"
	"net/netip"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer"
)

// Hardware is the immutable per-adapter machine configuration. Hetzner
// Cloud offers a single machine class, virtual machines.
type Hardware struct {
	Name       string
	ServerType string
	Image      string
	Location   string
	SSHKeys    []string
	Labels     map[string]string
}

// Handle references a provisioned Hetzner Cloud server.
type Handle struct {
	ID int64 `json:"id"`
}

// Deployer provisions Hetzner Cloud servers. It holds only immutable
// configuration and a reusable SDK client and is safe for concurrent use.
type Deployer struct {
	client   *hcloud.Client
	hardware Hardware
}

var _ deployer.Deployer[Handle] = (*Deployer)(nil)

// Option configures a Deployer.
type Option func(*Deployer)

// WithClient sets a custom hcloud client (useful for testing).
func WithClient(c *hcloud.Client) Option {
	return func(d *Deployer) { d.client = c }
}

// New creates a Hetzner Cloud deployer for the given machine configuration.
func New(token string, hardware Hardware, opts ...Option) *Deployer {
	d := &Deployer{
		client:   hcloud.NewClient(hcloud.WithToken(token)),
		hardware: hardware,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deploy creates a new server with the machine configuration and the
// rendered cloud-init script as user data.
func (d *Deployer) Deploy(ctx context.Context, input deployer.DeployInput) (Handle, error) {
	opts := hcloud.ServerCreateOpts{
		Name:       d.hardware.Name,
		ServerType: &hcloud.ServerType{Name: d.hardware.ServerType},
		Image:      &hcloud.Image{Name: d.hardware.Image},
		UserData:   input.CloudInit(),
		Labels:     d.hardware.Labels,
	}
	if d.hardware.Location != "" {
		opts.Location = &hcloud.Location{Name: d.hardware.Location}
	}
	for _, key := range d.hardware.SSHKeys {
		opts.SSHKeys = append(opts.SSHKeys, &hcloud.SSHKey{Name: key})
	}

	result, _, err := d.client.Server.Create(ctx, opts)
	if err != nil {
		return Handle{}, transportErr("create", err)
	}
	return Handle{ID: result.Server.ID}, nil
}

// Undeploy deletes the server referenced by handle.
func (d *Deployer) Undeploy(ctx context.Context, handle Handle) error {
	_, _, err := d.client.Server.DeleteWithResult(ctx, &hcloud.Server{ID: handle.ID})
	if err != nil {
		return transportErr("delete", err)
	}
	return nil
}

// IPv4 reads the server's public IPv4 address. A server that does not exist
// (already deleted) or has no public IPv4 yields the zero address; address
// assignment on Hetzner Cloud is near-immediate but not guaranteed at
// create time.
func (d *Deployer) IPv4(ctx context.Context, handle Handle) (deployer.OptionalSupport[netip.Addr], error) {
	server, _, err := d.client.Server.GetByID(ctx, handle.ID)
	if err != nil {
		return deployer.NotSupported[netip.Addr](), transportErr("read", err)
	}
	if server == nil || server.PublicNet.IPv4.IP == nil {
		return deployer.Supported(netip.Addr{}), nil
	}

	ip := server.PublicNet.IPv4.IP.To4()
	if ip == nil {
		return deployer.Supported(netip.Addr{}), nil
	}
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return deployer.Supported(netip.Addr{}), nil
	}
	return deployer.Supported(addr), nil
}

// transportErr classifies an SDK error as a transport failure. The SDK
// folds HTTP status handling into its own error type, so the status code is
// left to the wrapped error's message.
func transportErr(op string, err error) error {
	return &deployer.TransportError{Op: op, Err: err}
}
