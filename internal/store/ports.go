// Package store declares the transaction store consumed by the interpreter
// and the HTTP API. Implementations live in store/memory, storage and
// storage/postgres.
package store

import (
	"context"
	"time"

	"financas/internal/core"
)

type (
	Inserter interface {
		// Insert persists t and returns the id assigned by the store.
		Insert(ctx context.Context, t core.Transaction) (id string, err error)
	}

	RecentSelector interface {
		// SelectRecent returns the owner's transactions most-recent-first.
		// A limit <= 0 means no limit; a nil since means no lower bound.
		SelectRecent(ctx context.Context, owner string, limit int, since *time.Time) ([]core.Transaction, error)
	}

	Deleter interface {
		// DeleteByID removes the transaction only when it belongs to owner.
		// Returns core.ErrNotFound when no row matched.
		DeleteByID(ctx context.Context, owner, id string) error
	}

	Store interface {
		Inserter
		RecentSelector
		Deleter
	}
)
