package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/freshconnect/api/internal/core/domain"
	"github.com/freshconnect/api/internal/core/usecases"
)

type mockCredRepo struct {
	creds []domain.VendorCredential
}

func (m *mockCredRepo) List(ctx context.Context) ([]domain.VendorCredential, error) {
	return m.creds, nil
}
func (m *mockCredRepo) SaveAll(ctx context.Context, creds []domain.VendorCredential) error {
	m.creds = creds
	return nil
}

type mockSessionRepo struct {
	current string
}

func (m *mockSessionRepo) CurrentVendor(ctx context.Context) (string, error) { return m.current, nil }
func (m *mockSessionRepo) SetCurrentVendor(ctx context.Context, vendorID string) error {
	m.current = vendorID
	return nil
}
func (m *mockSessionRepo) ClearCurrentVendor(ctx context.Context) error {
	m.current = ""
	return nil
}

func authFixture() (*usecases.AuthService, *mockSessionRepo) {
	creds := &mockCredRepo{creds: []domain.VendorCredential{
		{Username: "freshfarm", Password: "harvest2024", VendorID: "vendor-1"},
	}}
	sessions := &mockSessionRepo{}
	vendors := &mockVendorRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Vendor, error) {
			return &domain.Vendor{ID: id, Name: "Fresh Farm Market"}, nil
		},
	}
	return usecases.NewAuthService(creds, sessions, vendors), sessions
}

func TestAuthService_Login(t *testing.T) {
	svc, sessions := authFixture()

	vendor, err := svc.Login(context.Background(), "freshfarm", "harvest2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vendor.ID != "vendor-1" {
		t.Errorf("expected vendor-1, got %q", vendor.ID)
	}
	if sessions.current != "vendor-1" {
		t.Errorf("expected a session for vendor-1, got %q", sessions.current)
	}
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	svc, sessions := authFixture()

	cases := []struct{ user, pass string }{
		{"freshfarm", "wrong"},
		{"unknown", "harvest2024"},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Login(context.Background(), tc.user, tc.pass); !errors.Is(err, usecases.ErrInvalidCredentials) {
			t.Errorf("login %q/%q: expected ErrInvalidCredentials, got %v", tc.user, tc.pass, err)
		}
	}
	if sessions.current != "" {
		t.Errorf("failed logins must not open a session, got %q", sessions.current)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, sessions := authFixture()
	if _, err := svc.Login(context.Background(), "freshfarm", "harvest2024"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.current != "" {
		t.Error("expected session to be cleared")
	}

	// A second logout with no open session is fine.
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}
}

func TestAuthService_CurrentVendor(t *testing.T) {
	svc, _ := authFixture()

	vendor, err := svc.CurrentVendor(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vendor != nil {
		t.Errorf("expected nil vendor without a session, got %+v", vendor)
	}

	if _, err := svc.Login(context.Background(), "freshfarm", "harvest2024"); err != nil {
		t.Fatalf("login: %v", err)
	}
	vendor, err = svc.CurrentVendor(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vendor == nil || vendor.ID != "vendor-1" {
		t.Errorf("expected vendor-1, got %+v", vendor)
	}
}
