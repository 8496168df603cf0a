package geolocation

import (
	"errors"

	"github.com/freshconnect/api/internal/core/ports"
)

// Provider is the location-acquisition port this package implements.
// Locate blocks until the provider resolves a fix, fails, or the
// context expires; the package never retries on its own.
type Provider = ports.LocationProvider

// Failure kinds. Callers pick these apart with errors.Is to decide what
// to show the user; every error also carries a readable message.
var (
	// ErrPermissionDenied means the provider refused access.
	ErrPermissionDenied = errors.New("location access denied")
	// ErrPositionUnavailable means the provider could not determine a fix.
	ErrPositionUnavailable = errors.New("position unavailable")
	// ErrTimeout means no fix arrived within the allotted time.
	ErrTimeout = errors.New("location request timed out")
	// ErrUnsupported means no location capability is configured at all.
	ErrUnsupported = errors.New("geolocation is not supported")
)
