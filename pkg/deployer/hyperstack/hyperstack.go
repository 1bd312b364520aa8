// Package hyperstack implements the deployer contract against the
// Hyperstack (NexGen Cloud) virtual machine API.
//
// API reference: https://docs.hyperstack.cloud/docs/api-reference
package hyperstack

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/netip"

	"github.com/openmesh-network/xnode-deployer-go/internal/jsonapi"
	"github.com/openmesh-network/xnode-deployer-go/pkg/deployer"
)

const (
	baseURL      = "https://infrahub-api.nexgencloud.com/v1"
	authHeader   = "api_key"
	providerName = "hyperstack"

	// imageName is the fixed OS image installed on every machine.
	imageName = "Ubuntu Server 22.04 LTS (Jammy Jellyfish)"
)

// Hardware is the immutable per-adapter machine configuration. Hyperstack
// offers a single machine class, virtual machines.
type Hardware struct {
	Name            string
	EnvironmentName string
	FlavorName      string
	KeyName         string
}

// Handle references a provisioned Hyperstack virtual machine.
type Handle struct {
	ID uint64 `json:"id"`
}

// Deployer provisions Hyperstack virtual machines. It holds only immutable
// configuration and a reusable transport and is safe for concurrent use.
type Deployer struct {
	api      *jsonapi.Client
	hardware Hardware
}

var _ deployer.Deployer[Handle] = (*Deployer)(nil)

// Option configures a Deployer.
type Option func(*jsonapi.Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return Option(jsonapi.WithHTTPClient(hc))
}

// WithBaseURL overrides the API base URL (useful for testing).
func WithBaseURL(u string) Option {
	return Option(jsonapi.WithBaseURL(u))
}

// New creates a Hyperstack deployer for the given machine configuration.
func New(apiKey string, hardware Hardware, opts ...Option) *Deployer {
	jsonapiOpts := make([]jsonapi.Option, len(opts))
	for i, opt := range opts {
		jsonapiOpts[i] = jsonapi.Option(opt)
	}
	return &Deployer{
		api:      jsonapi.NewClient(baseURL, authHeader, apiKey, jsonapiOpts...),
		hardware: hardware,
	}
}

// securityRules opens all TCP and UDP ingress so the machine is reachable
// for whatever the boot script installs.
func securityRules() []map[string]any {
	rules := make([]map[string]any, 0, 2)
	for _, protocol := range []string{"tcp", "udp"} {
		rules = append(rules, map[string]any{
			"direction":        "ingress",
			"protocol":         protocol,
			"ethertype":        "IPv4",
			"remote_ip_prefix": "0.0.0.0/0",
			"port_range_min":   1,
			"port_range_max":   65535,
		})
	}
	return rules
}

// Deploy creates a new virtual machine and returns its handle. The create
// endpoint responds with an array of created instances; the machine id is
// taken from the first element, and an empty array is its own structural
// error, distinct from a missing or malformed one.
func (d *Deployer) Deploy(ctx context.Context, input deployer.DeployInput) (Handle, error) {
	body := map[string]any{
		"name":               d.hardware.Name,
		"environment_name":   d.hardware.EnvironmentName,
		"image_name":         imageName,
		"flavor_name":        d.hardware.FlavorName,
		"key_name":           d.hardware.KeyName,
		"count":              1,
		"assign_floating_ip": true,
		"user_data":          input.CloudInit(),
		"security_rules":     securityRules(),
	}

	resp, err := d.api.Do(ctx, "create", http.MethodPost, "/core/virtual-machines", body)
	if err != nil {
		return Handle{}, err
	}

	id, err := parseCreateResponse(resp)
	if err != nil {
		return Handle{}, &deployer.ProviderError{Provider: providerName, Err: err}
	}
	return Handle{ID: id}, nil
}

// Undeploy deletes the virtual machine referenced by handle.
func (d *Deployer) Undeploy(ctx context.Context, handle Handle) error {
	return d.api.DoDiscard(ctx, "delete", http.MethodDelete, d.machinePath(handle))
}

// IPv4 reads the machine's floating address, nested one level under the
// response's "instance" object. An absent, non-string or unparseable field
// means the address is not assigned yet and yields the zero address, not an
// error.
func (d *Deployer) IPv4(ctx context.Context, handle Handle) (deployer.OptionalSupport[netip.Addr], error) {
	resp, err := d.api.Do(ctx, "read", http.MethodGet, d.machinePath(handle), nil)
	if err != nil {
		return deployer.NotSupported[netip.Addr](), err
	}

	if obj, ok := resp.(map[string]any); ok {
		if instance, ok := obj["instance"].(map[string]any); ok {
			if s, ok := instance["floating_ip"].(string); ok {
				if addr, err := netip.ParseAddr(s); err == nil && addr.Is4() {
					return deployer.Supported(addr), nil
				}
			}
		}
	}
	return deployer.Supported(netip.Addr{}), nil
}

func (d *Deployer) machinePath(handle Handle) string {
	return fmt.Sprintf("/core/virtual-machines/%d", handle.ID)
}

func parseCreateResponse(resp any) (uint64, error) {
	obj, ok := resp.(map[string]any)
	if !ok {
		return 0, &ResponseNotObjectError{Response: resp}
	}

	rawInstances, ok := obj["instances"]
	if !ok {
		return 0, &ResponseMissingInstancesError{Object: obj}
	}
	instances, ok := rawInstances.([]any)
	if !ok {
		return 0, &ResponseInvalidInstancesError{Instances: rawInstances}
	}
	if len(instances) == 0 {
		return 0, &ResponseEmptyInstancesError{}
	}

	instance, ok := instances[0].(map[string]any)
	if !ok {
		return 0, &ResponseNotObjectError{Response: instances[0]}
	}

	rawID, ok := instance["id"]
	if !ok {
		return 0, &ResponseMissingIDError{Object: instance}
	}
	id, ok := asUint64(rawID)
	if !ok {
		return 0, &ResponseInvalidIDError{ID: rawID}
	}
	return id, nil
}

// asUint64 converts a decoded JSON value to a non-negative integer. JSON
// numbers decode as float64; anything else is a wrong-type value.
func asUint64(v any) (uint64, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxUint64 {
		return 0, false
	}
	return uint64(f), true
}
