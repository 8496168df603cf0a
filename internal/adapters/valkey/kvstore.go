package valkey

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/freshconnect/api/internal/core/ports"
)

// KVStore implements ports.KeyValueStore on Valkey strings without
// expiry, so the gateway's collections survive restarts as long as the
// server persists.
type KVStore struct {
	client valkey.Client
}

// NewKVStore connects a Valkey-backed key-value store.
func NewKVStore(addr string) (*KVStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &KVStore{client: client}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.client.Do(ctx, s.client.B().Get().Key(key).Build())
	if err := cmd.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, err
	}
	return cmd.AsBytes()
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.client.Do(ctx, s.client.B().Set().Key(key).Value(string(value)).Build())
	return cmd.Error()
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	cmd := s.client.Do(ctx, s.client.B().Del().Key(key).Build())
	return cmd.Error()
}

// Close releases the client.
func (s *KVStore) Close() {
	s.client.Close()
}
