package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/freshconnect/api/internal/core/domain"
)

// IP-based fixes are city-level at best; report a conservative accuracy
// rather than pretending to GPS precision.
const ipFixAccuracyMeters = 5000.0

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// IPAPIProvider resolves the caller's position from its public IP via
// the ip-api.com JSON endpoint. Fixes are coarse but need no user
// permission or API key.
type IPAPIProvider struct {
	client  HTTPClient
	baseURL string
	log     *slog.Logger
}

// ipapiResponse is the subset of the ip-api JSON payload we read.
type ipapiResponse struct {
	Status  string  `json:"status"` // "success" | "fail"
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// NewIPAPIProvider creates an IP-geolocation provider against the given
// endpoint (the public ip-api.com URL in production).
func NewIPAPIProvider(baseURL string, log *slog.Logger) *IPAPIProvider {
	const timeout = 10
	return &IPAPIProvider{
		client:  &http.Client{Timeout: timeout * time.Second},
		baseURL: baseURL,
		log:     log,
	}
}

// NewIPAPIProviderWithClient creates a provider with a custom HTTP
// client. Useful for testing with mocked transports.
func NewIPAPIProviderWithClient(client HTTPClient, baseURL string, log *slog.Logger) *IPAPIProvider {
	return &IPAPIProvider{client: client, baseURL: baseURL, log: log}
}

// Locate requests a fix for the caller's public IP. Context expiry maps
// to ErrTimeout, quota rejections to ErrPermissionDenied, and anything
// the service cannot resolve to ErrPositionUnavailable.
func (p *IPAPIProvider) Locate(ctx context.Context) (*domain.UserLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %s", ErrPositionUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrPositionUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: provider rejected the request (HTTP %d)", ErrPermissionDenied, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrPositionUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %s", ErrPositionUnavailable, err)
	}

	var parsed ipapiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %s", ErrPositionUnavailable, err)
	}
	if parsed.Status != "success" {
		return nil, fmt.Errorf("%w: %s", ErrPositionUnavailable, parsed.Message)
	}

	p.log.Debug("ip geolocation fix acquired", "lat", parsed.Lat, "lon", parsed.Lon)

	return &domain.UserLocation{
		GeoPoint: domain.GeoPoint{Lat: parsed.Lat, Lon: parsed.Lon},
		Accuracy: ipFixAccuracyMeters,
	}, nil
}
