package drafts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoSnapshot is returned by SnapshotStore.Get when the biller has no
// persisted draft. Callers start a fresh draft in that case.
var ErrNoSnapshot = errors.New("drafts: snapshot not found")

// SnapshotStore persists one serialized draft per biller so an in-progress
// bill survives process restarts and browser crashes. Implementations must
// scope keys by biller id.
type SnapshotStore interface {
	Get(ctx context.Context, billerID uuid.UUID) ([]byte, error)
	Set(ctx context.Context, billerID uuid.UUID, data []byte, ttl time.Duration) error
	Remove(ctx context.Context, billerID uuid.UUID) error
}
