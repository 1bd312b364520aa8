// Package hivelocity implements the deployer contract against the
// Hivelocity device API. Hivelocity offers two machine classes, dedicated
// bare metal and VPS compute, which live in different REST resource
// collections but share one request shape.
//
// API reference: https://developers.hivelocity.net/reference
package hivelocity

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
	baseURL      = "https://core.hivelocity.net/api/v2"
	authHeader   = "X-API-KEY"
	providerName = "hivelocity"
)

// MachineClass selects the Hivelocity resource collection backing the
// machine. The value doubles as the URL scope of the collection.
type MachineClass string

const (
	// BareMetal provisions a dedicated bare-metal device.
	BareMetal MachineClass = "bare-metal-devices"
	// Compute provisions a VPS.
	Compute MachineClass = "compute"
)

// osName returns the fixed OS image identifier installed on this class.
func (c MachineClass) osName() string {
	if c == Compute {
		return "Ubuntu 24.04 (VPS)"
	}
	return "Ubuntu 24.04"
}

// Hardware is the immutable per-adapter machine configuration. Exactly one
// machine class is selected per adapter instance.
type Hardware struct {
	Class        MachineClass
	LocationName string
	Period       string
	Tags         []string
	ProductID    uint64
	Hostname     string
}

// Handle references a provisioned Hivelocity device.
type Handle struct {
	DeviceID uint64 `json:"device_id"`
}

// Deployer provisions Hivelocity devices. It holds only immutable
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

// New creates a Hivelocity deployer for the given machine configuration.
func New(apiKey string, hardware Hardware, opts ...Option) (*Deployer, error) {
	switch hardware.Class {
	case BareMetal, Compute:
	default:
		return nil, fmt.Errorf("unknown hivelocity machine class %q", hardware.Class)
	}

	jsonapiOpts := make([]jsonapi.Option, len(opts))
	for i, opt := range opts {
		jsonapiOpts[i] = jsonapi.Option(opt)
	}
	return &Deployer{
		api:      jsonapi.NewClient(baseURL, authHeader, apiKey, jsonapiOpts...),
		hardware: hardware,
	}, nil
}

// Deploy creates a new device and returns its handle. The device id is
// parsed from the create response's top-level "deviceId" field; any other
// response shape yields a classified structural error.
func (d *Deployer) Deploy(ctx context.Context, input deployer.DeployInput) (Handle, error) {
	body := map[string]any{
		"locationName": d.hardware.LocationName,
		"period":       d.hardware.Period,
		"tags":         d.hardware.Tags,
		"script":       input.CloudInit(),
		"productId":    d.hardware.ProductID,
		"osName":       d.hardware.Class.osName(),
		"hostname":     d.hardware.Hostname,
	}

	resp, err := d.api.Do(ctx, "create", http.MethodPost, "/"+string(d.hardware.Class)+"/", body)
	if err != nil {
		return Handle{}, err
	}

	deviceID, err := parseCreateResponse(resp)
	if err != nil {
		return Handle{}, &deployer.ProviderError{Provider: providerName, Err: err}
	}
	return Handle{DeviceID: deviceID}, nil
}

// Undeploy deletes the device referenced by handle. The delete endpoint is
// scoped by the adapter's machine class: the same handle must be undeployed
// through an adapter configured for the class that created it.
func (d *Deployer) Undeploy(ctx context.Context, handle Handle) error {
	return d.api.DoDiscard(ctx, "delete", http.MethodDelete, d.devicePath(handle))
}

// IPv4 reads the device's primary address from its top-level "primaryIp"
// field. An absent, non-string or unparseable field means the address is not
// assigned yet and yields the zero address, not an error.
func (d *Deployer) IPv4(ctx context.Context, handle Handle) (deployer.OptionalSupport[netip.Addr], error) {
	resp, err := d.api.Do(ctx, "read", http.MethodGet, d.devicePath(handle), nil)
	if err != nil {
		return deployer.NotSupported[netip.Addr](), err
	}

	if obj, ok := resp.(map[string]any); ok {
		if s, ok := obj["primaryIp"].(string); ok {
			if addr, err := netip.ParseAddr(s); err == nil && addr.Is4() {
				return deployer.Supported(addr), nil
			}
		}
	}
	return deployer.Supported(netip.Addr{}), nil
}

func (d *Deployer) devicePath(handle Handle) string {
	return fmt.Sprintf("/%s/%d", d.hardware.Class, handle.DeviceID)
}

func parseCreateResponse(resp any) (uint64, error) {
	obj, ok := resp.(map[string]any)
	if !ok {
		return 0, &ResponseNotObjectError{Response: resp}
	}

	raw, ok := obj["deviceId"]
	if !ok {
		return 0, &ResponseMissingDeviceIDError{Object: obj}
	}

	deviceID, ok := asUint64(raw)
	if !ok {
		return 0, &ResponseInvalidDeviceIDError{DeviceID: raw}
	}
	return deviceID, nil
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
