package deployer

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"
)

// ErrAddressNotSupported is returned by WaitForIPv4 when the adapter
// declares address lookup categorically unsupported for its machine class.
// Waiting cannot ever succeed in that case, so it fails immediately.
var ErrAddressNotSupported = errors.New("provider does not support address lookup")

// PollConfig holds readiness polling configuration.
type PollConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

// PollOption is a functional option for polling configuration.
type PollOption func(*PollConfig)

// WithPollInterval sets the delay between address polls.
func WithPollInterval(d time.Duration) PollOption {
	return func(c *PollConfig) { c.Interval = d }
}

// WithMaxAttempts caps the number of address polls.
func WithMaxAttempts(n int) PollOption {
	return func(c *PollConfig) { c.MaxAttempts = n }
}

// WaitForIPv4 polls d.IPv4 until the machine referenced by handle reports a
// usable public address. Providers assign addresses after instance creation,
// some reporting the placeholder 0.0.0.0 in the meantime; both the zero
// netip.Addr and unspecified addresses count as not-yet-assigned.
//
// The wait is bounded: after MaxAttempts polls (default 300, one per second)
// it returns a *TimeoutError. Context cancellation is respected between
// polls. Transport and structural errors from IPv4 abort the wait; a
// not-yet-assigned address does not.
func WaitForIPv4[H any](ctx context.Context, d Deployer[H], handle H, opts ...PollOption) (netip.Addr, error) {
	cfg := &PollConfig{
		Interval:    1 * time.Second,
		MaxAttempts: 300,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	start := time.Now()
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		res, err := d.IPv4(ctx, handle)
		if err != nil {
			return netip.Addr{}, err
		}

		addr, supported := res.Get()
		if !supported {
			return netip.Addr{}, ErrAddressNotSupported
		}
		if addr.IsValid() && !addr.IsUnspecified() {
			return addr, nil
		}

		if attempt < cfg.MaxAttempts {
			select {
			case <-ctx.Done():
				return netip.Addr{}, fmt.Errorf("wait for address cancelled after %d polls: %w", attempt, ctx.Err())
			case <-time.After(cfg.Interval):
			}
		}
	}

	return netip.Addr{}, &TimeoutError{Attempts: cfg.MaxAttempts, Elapsed: time.Since(start)}
}
