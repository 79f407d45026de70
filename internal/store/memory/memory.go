package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"financas/internal/core"
	"financas/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps transactions in process memory. Data is lost on restart.
type Store struct {
	mu    sync.Mutex
	seq   int64
	items []entry
	now   func() time.Time
}

// entry carries an insertion sequence so equal timestamps still order
// most-recent-first.
type entry struct {
	seq int64
	tx  core.Transaction
}

func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock is used by tests that need deterministic timestamps.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// Insert stores the transaction and assigns a UUID.
func (s *Store) Insert(_ context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.NewString()
	if t.OccurredAt.IsZero() {
		t.OccurredAt = s.now()
	}
	s.seq++
	s.items = append(s.items, entry{seq: s.seq, tx: t})
	return t.ID, nil
}

func (s *Store) SelectRecent(_ context.Context, owner string, limit int, since *time.Time) ([]core.Transaction, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, core.ErrMissingOwner
	}
	s.mu.Lock()
	matched := make([]entry, 0, len(s.items))
	for _, e := range s.items {
		if e.tx.Owner != owner {
			continue
		}
		if since != nil && e.tx.OccurredAt.Before(*since) {
			continue
		}
		matched = append(matched, e)
	}
	s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.tx.OccurredAt.Equal(b.tx.OccurredAt) {
			return a.tx.OccurredAt.After(b.tx.OccurredAt)
		}
		return a.seq > b.seq
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	out := make([]core.Transaction, len(matched))
	for i, e := range matched {
		out[i] = e.tx
	}
	return out, nil
}

func (s *Store) DeleteByID(_ context.Context, owner, id string) error {
	if strings.TrimSpace(owner) == "" {
		return core.ErrMissingOwner
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.tx.ID == id && e.tx.Owner == owner {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

// Len returns the number of stored transactions across all owners.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
