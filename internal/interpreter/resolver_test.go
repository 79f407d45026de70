package interpreter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financas/internal/core"
	"financas/internal/store/memory"
)

// failingStore fails every call with err.
type failingStore struct{ err error }

func (f failingStore) Insert(context.Context, core.Transaction) (string, error) { return "", f.err }

func (f failingStore) SelectRecent(context.Context, string, int, *time.Time) ([]core.Transaction, error) {
	return nil, f.err
}

func (f failingStore) DeleteByID(context.Context, string, string) error { return f.err }

// seed inserts one transaction per category, a minute apart, oldest first.
func seed(t *testing.T, s *memory.Store, owner string, categories ...string) []string {
	t.Helper()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	ids := make([]string, 0, len(categories))
	for i, c := range categories {
		id, err := s.Insert(context.Background(), core.Transaction{
			Owner:       owner,
			Category:    c,
			Description: "gasto com " + c,
			Value:       decimal.NewFromInt(int64(10 * (i + 1))),
			Kind:        core.Expense,
			OccurredAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestResolveDeleteLast(t *testing.T) {
	s := memory.New()
	ids := seed(t, s, "ana", "mercado", "uber")
	seed(t, s, "bia", "farmacia")

	got, err := NewResolver(s).Delete(context.Background(), "ana", Intent{Kind: DeleteLast})
	require.NoError(t, err)
	assert.Equal(t, ids[1], got.ID)
	assert.Equal(t, "uber", got.Category)
	assert.Equal(t, 2, s.Len())
}

func TestResolveDeleteLastEmpty(t *testing.T) {
	_, err := NewResolver(memory.New()).Delete(context.Background(), "ana", Intent{Kind: DeleteLast})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestResolveByIndex(t *testing.T) {
	s := memory.New()
	ids := seed(t, s, "ana", "mercado", "uber", "luz")
	r := NewResolver(s)

	// Most recent first: 1=luz, 2=uber, 3=mercado.
	got, err := r.Resolve(context.Background(), "ana", Intent{Kind: DeleteByIndex, Index: 2})
	require.NoError(t, err)
	assert.Equal(t, ids[1], got.ID)

	for _, n := range []int{0, -1, 4, IndexWindow + 1} {
		_, err := r.Resolve(context.Background(), "ana", Intent{Kind: DeleteByIndex, Index: n})
		assert.ErrorIs(t, err, core.ErrNotFound, "index %d", n)
	}
	assert.Equal(t, 3, s.Len())
}

func TestResolveByIndexBeyondWindow(t *testing.T) {
	s := memory.New()
	cats := make([]string, IndexWindow+2)
	for i := range cats {
		cats[i] = "item"
	}
	seed(t, s, "ana", cats...)

	_, err := NewResolver(s).Resolve(context.Background(), "ana", Intent{Kind: DeleteByIndex, Index: IndexWindow + 1})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestResolveByDescription(t *testing.T) {
	s := memory.New()
	ids := seed(t, s, "ana", "mercado", "uber", "mercado")
	r := NewResolver(s)

	got, err := r.Delete(context.Background(), "ana", Intent{Kind: DeleteByDescription, Query: "MERCADO"})
	require.NoError(t, err)
	assert.Equal(t, ids[2], got.ID, "most recent match wins")

	_, err = r.Delete(context.Background(), "ana", Intent{Kind: DeleteByDescription, Query: "cinema"})
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = r.Delete(context.Background(), "ana", Intent{Kind: DeleteByDescription})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestResolveNeverCrossesOwners(t *testing.T) {
	s := memory.New()
	seed(t, s, "bia", "mercado")

	_, err := NewResolver(s).Delete(context.Background(), "ana", Intent{Kind: DeleteByDescription, Query: "mercado"})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestResolveStoreFailure(t *testing.T) {
	r := NewResolver(failingStore{err: errors.New("connection refused")})
	_, err := r.Delete(context.Background(), "ana", Intent{Kind: DeleteLast})
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
}

func TestResolveRejectsOtherIntents(t *testing.T) {
	_, err := NewResolver(memory.New()).Resolve(context.Background(), "ana", Intent{Kind: Report})
	assert.Error(t, err)
}
