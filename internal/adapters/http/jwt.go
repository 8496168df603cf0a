package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// vendorClaims are the JWT claims minted on login. Subject carries the
// vendor ID.
type vendorClaims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// mintToken issues a signed HS256 token for the vendor.
func mintToken(secret, vendorID, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := vendorClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   vendorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken validates the token signature and expiry and returns the
// claims.
func parseToken(secret, tokenString string) (*vendorClaims, error) {
	claims := &vendorClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// RequireVendor guards dashboard routes. It expects an
// "Authorization: Bearer <token>" header and stores the vendor ID in
// c.Locals("vendor_id") for downstream handlers.
func RequireVendor(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return errUnauthorized(c, "missing authorization header")
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return errUnauthorized(c, "authorization header must be a bearer token")
		}

		claims, err := parseToken(deps.JWTSecret, tokenString)
		if err != nil {
			return errUnauthorized(c, "invalid or expired token")
		}
		if claims.Subject == "" {
			return errUnauthorized(c, "invalid or expired token")
		}

		c.Locals("vendor_id", claims.Subject)
		return c.Next()
	}
}

// vendorID returns the authenticated vendor set by RequireVendor.
func vendorID(c *fiber.Ctx) string {
	id, _ := c.Locals("vendor_id").(string)
	return id
}
