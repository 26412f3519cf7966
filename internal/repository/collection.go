package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/pkg/store"
)

// collection gives typed whole-collection access to one store key. Read
// failures degrade to an empty collection and write failures to a no-op;
// both are logged. The views built on top always render something rather
// than surfacing a storage fault.
type collection[T any] struct {
	store  store.Store
	key    string
	logger *zap.Logger
}

func newCollection[T any](s store.Store, key string, logger *zap.Logger) collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return collection[T]{store: s, key: key, logger: logger}
}

// List returns the full collection, or an empty slice when the key is unset
// or the read fails.
func (c collection[T]) List(ctx context.Context) []T {
	var items []T
	err := c.store.Get(ctx, c.key, &items)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.logger.Warn("collection read failed", zap.String("key", c.key), zap.Error(err))
		}
		return nil
	}
	return items
}

// Replace overwrites the full collection. Failures are logged and dropped.
func (c collection[T]) Replace(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	if err := c.store.Put(ctx, c.key, items); err != nil {
		c.logger.Warn("collection write failed", zap.String("key", c.key), zap.Error(err))
	}
}
