package deployer

import (
	"errors"
	"fmt"
	"time"
)

// TransportError reports that a provider request could not be completed or
// came back with a non-success status. The core never retries these; they
// propagate to the caller immediately.
type TransportError struct {
	Op         string // "create", "delete" or "read"
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	target := e.URL
	if target == "" {
		target = "request"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, target, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, target, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError wraps a provider-tagged structural-response failure: the
// request completed but the response did not have the shape the provider's
// API contract promises. Err is one of the provider package's response error
// types and carries the offending JSON fragment for diagnosis.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// TimeoutError reports that the readiness wait gave up before the machine
// was assigned an address. The machine keeps existing (and billing) remotely.
type TimeoutError struct {
	Attempts int
	Elapsed  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no address assigned after %d polls (%s)", e.Attempts, e.Elapsed.Round(time.Second))
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsProvider reports whether err is (or wraps) a ProviderError.
func IsProvider(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// IsTimeout reports whether err is (or wraps) a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
