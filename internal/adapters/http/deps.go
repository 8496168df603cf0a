package http

import (
	"time"

	"github.com/nats-io/nats.go"

	"github.com/freshconnect/api/internal/adapters/postgres"
	"github.com/freshconnect/api/internal/adapters/valkey"
	"github.com/freshconnect/api/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Discovery *usecases.DiscoveryService
	Inventory *usecases.InventoryService
	Auth      *usecases.AuthService
	Location  *usecases.LocationService

	NATS  *nats.Conn
	DB    *postgres.DB
	Cache *valkey.Cache

	// GeoProvider names the configured location provider, used as a
	// metric label.
	GeoProvider string

	JWTSecret string
	TokenTTL  time.Duration
}
