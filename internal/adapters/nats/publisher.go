package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/freshconnect/api/internal/core/domain"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
// Inventory and vendor changes fan out to map clients over these
// subjects via the WebSocket relay.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the market streams exist.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	streams := []nats.StreamConfig{
		{
			Name:      "MARKET_ITEMS",
			Subjects:  []string{"market.item.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "MARKET_VENDORS",
			Subjects:  []string{"market.vendor.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist — try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// itemEvent is the wire shape of an inventory change notification.
type itemEvent struct {
	Op   string              `json:"op"` // added | updated | deleted
	Item *domain.ProduceItem `json:"item"`
}

func (p *Publisher) PublishItemChange(ctx context.Context, op string, item *domain.ProduceItem) error {
	data, err := json.Marshal(itemEvent{Op: op, Item: item})
	if err != nil {
		return err
	}
	_, err = p.js.Publish("market.item."+item.VendorID, data)
	return err
}

func (p *Publisher) PublishVendorUpdate(ctx context.Context, vendor *domain.Vendor) error {
	data, err := json.Marshal(vendor)
	if err != nil {
		return err
	}
	_, err = p.js.Publish("market.vendor."+vendor.ID, data)
	return err
}

func (p *Publisher) PublishBroadcast(ctx context.Context, data []byte) error {
	return p.conn.Publish("market.updates.broadcast", data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
