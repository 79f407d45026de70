package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financas/internal/core"
	"financas/internal/log"
	"financas/internal/store/memory"
)

type recordingPublisher struct {
	created []core.Transaction
	deleted []core.Transaction
	err     error
}

func (p *recordingPublisher) PublishCreated(_ context.Context, t core.Transaction) error {
	p.created = append(p.created, t)
	return p.err
}

func (p *recordingPublisher) PublishDeleted(_ context.Context, t core.Transaction) error {
	p.deleted = append(p.deleted, t)
	return p.err
}

func expense(owner string) core.Transaction {
	return core.Transaction{Owner: owner, Category: "mercado", Kind: core.Expense, Value: decimal.NewFromInt(40)}
}

func TestInsertPublishesCreated(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewTransactionService(memory.New(), pub, nil)

	id, err := svc.Insert(context.Background(), expense("ana"))
	require.NoError(t, err)
	require.Len(t, pub.created, 1)
	assert.Equal(t, id, pub.created[0].ID)
	assert.Equal(t, "mercado", pub.created[0].Category)
}

func TestPublishFailureDoesNotFailWrites(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{err: errors.New("circuit breaker is open")}
	mem := memory.New()
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelWarn, Output: &buf, Component: log.ComponentApp})
	svc := NewTransactionService(mem, pub, logger)

	id, err := svc.Insert(ctx, expense("ana"))
	require.NoError(t, err)
	assert.Equal(t, 1, mem.Len())

	require.NoError(t, svc.DeleteByID(ctx, "ana", id))
	assert.Equal(t, 0, mem.Len())
	require.Len(t, pub.deleted, 1)
	assert.Equal(t, id, pub.deleted[0].ID)
	assert.Equal(t, "ana", pub.deleted[0].Owner)

	out := buf.String()
	assert.Contains(t, out, "Failed to publish created event")
	assert.Contains(t, out, "Failed to publish deleted event")
	assert.Contains(t, out, "component=transactions")
}

func TestPublishFailureHonorsLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelError + 4, Output: &buf})
	svc := NewTransactionService(memory.New(), &recordingPublisher{err: errors.New("down")}, logger)

	_, err := svc.Insert(context.Background(), expense("ana"))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestFailedWritesPublishNothing(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := NewTransactionService(memory.New(), pub, nil)

	_, err := svc.Insert(ctx, expense(""))
	assert.ErrorIs(t, err, core.ErrMissingOwner)
	assert.ErrorIs(t, svc.DeleteByID(ctx, "ana", "missing"), core.ErrNotFound)
	assert.Empty(t, pub.created)
	assert.Empty(t, pub.deleted)
}

func TestNilPublisher(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.New(), nil, nil)
	id, err := svc.Insert(ctx, expense("ana"))
	require.NoError(t, err)

	got, err := svc.SelectRecent(ctx, "ana", 0, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
}
