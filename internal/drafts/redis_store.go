package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
	pkgredis "github.com/tiffinworks/pos-backend/pkg/redis"
)

// RedisStore keeps draft snapshots in Redis under pos:draft:<biller-id>.
type RedisStore struct {
	client *pkgredis.Client
}

// NewRedisStore wraps the shared Redis client as a SnapshotStore.
func NewRedisStore(client *pkgredis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client}, nil
}

// Get loads the biller's snapshot, translating a missing key to ErrNoSnapshot.
func (s *RedisStore) Get(ctx context.Context, billerID uuid.UUID) ([]byte, error) {
	value, err := s.client.Get(ctx, s.client.DraftKey(billerID.String()))
	if err != nil {
		if errors.Is(err, pkgredis.ErrNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load draft snapshot")
	}
	return []byte(value), nil
}

// Set writes the snapshot with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, billerID uuid.UUID, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.client.DraftKey(billerID.String()), string(data), ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to persist draft snapshot")
	}
	return nil
}

// Remove deletes the snapshot. Deleting an absent key is not an error.
func (s *RedisStore) Remove(ctx context.Context, billerID uuid.UUID) error {
	if err := s.client.Del(ctx, s.client.DraftKey(billerID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to remove draft snapshot")
	}
	return nil
}
