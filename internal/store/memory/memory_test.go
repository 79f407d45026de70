package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financas/internal/core"
)

func tx(owner, cat string, value int64, kind core.Kind) core.Transaction {
	return core.Transaction{
		Owner:    owner,
		Category: cat,
		Value:    decimal.NewFromInt(value),
		Kind:     kind,
	}
}

func TestInsertAndSelectRecent(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(func() time.Time { return fixed })

	id1, err := s.Insert(ctx, tx("ana", "mercado", 40, core.Expense))
	require.NoError(t, err)
	id2, err := s.Insert(ctx, tx("ana", "freela", 500, core.Income))
	require.NoError(t, err)
	_, err = s.Insert(ctx, tx("bia", "uber", 25, core.Expense))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	got, err := s.SelectRecent(ctx, "ana", 0, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Same timestamp: the later insert comes first.
	assert.Equal(t, id2, got[0].ID)
	assert.Equal(t, id1, got[1].ID)
	assert.Equal(t, fixed, got[0].OccurredAt)

	got, err = s.SelectRecent(ctx, "ana", 1, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSelectRecentSince(t *testing.T) {
	ctx := context.Background()
	s := New()
	old := tx("ana", "aluguel", 1200, core.Expense)
	old.OccurredAt = time.Now().AddDate(0, -6, 0)
	_, err := s.Insert(ctx, old)
	require.NoError(t, err)
	_, err = s.Insert(ctx, tx("ana", "mercado", 40, core.Expense))
	require.NoError(t, err)

	since := time.Now().AddDate(0, -1, 0)
	got, err := s.SelectRecent(ctx, "ana", 10, &since)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mercado", got[0].Category)
}

func TestDeleteByIDIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	s := New()
	id, err := s.Insert(ctx, tx("ana", "mercado", 40, core.Expense))
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteByID(ctx, "bia", id), core.ErrNotFound)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.DeleteByID(ctx, "ana", id))
	assert.Equal(t, 0, s.Len())
	assert.ErrorIs(t, s.DeleteByID(ctx, "ana", id), core.ErrNotFound)
}

func TestInsertRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.Insert(context.Background(), tx("", "mercado", 40, core.Expense))
	assert.ErrorIs(t, err, core.ErrMissingOwner)
	_, err = s.SelectRecent(context.Background(), "", 5, nil)
	assert.ErrorIs(t, err, core.ErrMissingOwner)
}
