package geolocation

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
)

type mockHTTPClient struct {
	doFn func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFn(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIPAPIProvider_Success(t *testing.T) {
	client := &mockHTTPClient{
		doFn: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(200, `{"status":"success","lat":28.6139,"lon":77.209}`), nil
		},
	}
	p := NewIPAPIProviderWithClient(client, "http://ip-api.com/json", discard())

	fix, err := p.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fix.Lat != 28.6139 || fix.Lon != 77.209 {
		t.Errorf("unexpected coordinates: %+v", fix.GeoPoint)
	}
	if fix.Accuracy <= 0 {
		t.Errorf("expected a positive accuracy estimate, got %f", fix.Accuracy)
	}
}

func TestIPAPIProvider_FailStatus(t *testing.T) {
	client := &mockHTTPClient{
		doFn: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(200, `{"status":"fail","message":"private range"}`), nil
		},
	}
	p := NewIPAPIProviderWithClient(client, "http://ip-api.com/json", discard())

	_, err := p.Locate(context.Background())
	if !errors.Is(err, ErrPositionUnavailable) {
		t.Errorf("expected ErrPositionUnavailable, got %v", err)
	}
}

func TestIPAPIProvider_QuotaRejection(t *testing.T) {
	client := &mockHTTPClient{
		doFn: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(429, ``), nil
		},
	}
	p := NewIPAPIProviderWithClient(client, "http://ip-api.com/json", discard())

	_, err := p.Locate(context.Background())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestIPAPIProvider_Timeout(t *testing.T) {
	client := &mockHTTPClient{
		doFn: func(req *http.Request) (*http.Response, error) {
			return nil, context.DeadlineExceeded
		},
	}
	p := NewIPAPIProviderWithClient(client, "http://ip-api.com/json", discard())

	_, err := p.Locate(context.Background())
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestIPAPIProvider_TransportError(t *testing.T) {
	client := &mockHTTPClient{
		doFn: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}
	p := NewIPAPIProviderWithClient(client, "http://ip-api.com/json", discard())

	_, err := p.Locate(context.Background())
	if !errors.Is(err, ErrPositionUnavailable) {
		t.Errorf("expected ErrPositionUnavailable, got %v", err)
	}
}
