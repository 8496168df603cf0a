package usecases

import (
	"context"
	"errors"

	"github.com/freshconnect/api/internal/core/domain"
	"github.com/freshconnect/api/internal/core/ports"
)

// ErrInvalidCredentials is returned on any login failure. The message
// never says whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService authenticates vendors against stored credentials and
// tracks the current session.
type AuthService struct {
	creds    ports.CredentialRepository
	sessions ports.SessionRepository
	vendors  ports.VendorRepository
}

func NewAuthService(creds ports.CredentialRepository, sessions ports.SessionRepository, vendors ports.VendorRepository) *AuthService {
	return &AuthService{creds: creds, sessions: sessions, vendors: vendors}
}

// Login checks the username and password against the credential store
// and opens a session for the matching vendor.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Vendor, error) {
	creds, err := s.creds.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range creds {
		if c.Username == username && c.Password == password {
			vendor, err := s.vendors.GetByID(ctx, c.VendorID)
			if err != nil {
				return nil, err
			}
			if err := s.sessions.SetCurrentVendor(ctx, c.VendorID); err != nil {
				return nil, err
			}
			return vendor, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout closes the current session. Logging out with no session open
// is not an error.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.ClearCurrentVendor(ctx)
}

// CurrentVendor returns the logged-in vendor, or nil when no session is
// open.
func (s *AuthService) CurrentVendor(ctx context.Context) (*domain.Vendor, error) {
	id, err := s.sessions.CurrentVendor(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	return s.vendors.GetByID(ctx, id)
}
