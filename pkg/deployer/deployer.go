// Package deployer defines the provider-agnostic machine lifecycle contract.
//
// A Deployer provisions a machine from a DeployInput, tears it down again,
// and reports the machine's public IPv4 address once the provider has
// assigned one. Provider adapters live in the subpackages (hivelocity,
// hyperstack, hetzner); callers program against the Deployer interface and
// persist only the returned handle between calls.
package deployer

import (
	"context"
	"net/netip"
)

// DeployInput carries the optional environment handed to a new machine's
// boot script. Every field is independently optional; an empty string means
// the field is omitted from the generated script.
//
// DeployInput is read-only from the adapter's perspective and safe to reuse
// across calls.
type DeployInput struct {
	XnodeOwner    string `json:"xnode_owner,omitempty" yaml:"xnode_owner" mapstructure:"xnode_owner"`
	Domain        string `json:"domain,omitempty" yaml:"domain" mapstructure:"domain"`
	ACMEEmail     string `json:"acme_email,omitempty" yaml:"acme_email" mapstructure:"acme_email"`
	UserPasswd    string `json:"user_passwd,omitempty" yaml:"user_passwd" mapstructure:"user_passwd"`
	Encrypted     string `json:"encrypted,omitempty" yaml:"encrypted" mapstructure:"encrypted"`
	InitialConfig string `json:"initial_config,omitempty" yaml:"initial_config" mapstructure:"initial_config"`
}

// Deployer is the uniform lifecycle contract implemented by every provider
// adapter. H is the adapter's handle type: a plain serializable struct
// referencing the remote machine, so a caller can persist it and undeploy
// from a different process later.
type Deployer[H any] interface {
	// Deploy provisions a new machine and returns its handle. The remote
	// resource is billable from the moment the provider accepts the create
	// request. Deploy is not idempotent: retrying after an ambiguous
	// failure (for example a timeout after the request reached the
	// provider) may create a duplicate machine.
	Deploy(ctx context.Context, input DeployInput) (H, error)

	// Undeploy deletes the machine referenced by handle. Calling it for a
	// machine that is already gone is provider-defined; whatever the
	// provider reports is surfaced, classified, not masked.
	Undeploy(ctx context.Context, handle H) error

	// IPv4 reports the machine's public IPv4 address. The outer
	// OptionalSupport layer declares whether the provider implements
	// address lookup for this machine class at all; inside it, the zero
	// netip.Addr means the lookup is supported but no address has been
	// assigned yet. An unassigned address is an expected transient state,
	// never an error.
	IPv4(ctx context.Context, handle H) (OptionalSupport[netip.Addr], error)
}

// OptionalSupport distinguishes "this provider does not implement the
// capability" from "the capability is implemented and produced this value".
// The zero value is NotSupported.
type OptionalSupport[T any] struct {
	supported bool
	value     T
}

// Supported wraps a value produced by an implemented capability.
func Supported[T any](v T) OptionalSupport[T] {
	return OptionalSupport[T]{supported: true, value: v}
}

// NotSupported declares that the capability is categorically absent.
func NotSupported[T any]() OptionalSupport[T] {
	return OptionalSupport[T]{}
}

// IsSupported reports whether the capability is implemented.
func (o OptionalSupport[T]) IsSupported() bool { return o.supported }

// Get returns the capability's value and whether it is supported. The value
// is the zero T when the capability is not supported.
func (o OptionalSupport[T]) Get() (T, bool) { return o.value, o.supported }
