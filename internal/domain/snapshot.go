package domain

import (
	"context"

	"github.com/pkg/errors"
)

// ErrSnapshotNotFound is returned by a SnapshotStore when the key holds no object.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore persists the newline-delimited title snapshot under one key.
type SnapshotStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
}
