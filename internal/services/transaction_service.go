package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"financas/internal/core"
	"financas/internal/log"
	"financas/internal/store"
)

// EventPublisher announces stored and removed transactions.
type EventPublisher interface {
	PublishCreated(ctx context.Context, t core.Transaction) error
	PublishDeleted(ctx context.Context, t core.Transaction) error
}

var _ store.Store = (*TransactionService)(nil)

// TransactionService is a store that publishes an event after every
// successful write. A failed publish is logged and never fails the write,
// since the transaction is already persisted.
type TransactionService struct {
	store     store.Store
	publisher EventPublisher
	logger    *log.Logger
}

// NewTransactionService wraps s. A nil publisher disables events; a nil
// logger discards publish failures.
func NewTransactionService(s store.Store, publisher EventPublisher, logger *log.Logger) *TransactionService {
	if logger == nil {
		logger = log.Discard()
	}
	return &TransactionService{
		store:     s,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentService),
	}
}

func (s *TransactionService) Insert(ctx context.Context, t core.Transaction) (string, error) {
	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}
	t.ID = id

	if s.publisher != nil {
		if err := s.publisher.PublishCreated(ctx, t); err != nil {
			fields := log.NewFields().
				WithOperation(log.OpCreate).
				WithTransaction(id, t.Owner, string(t.Kind), t.Category, t.Value.StringFixed(2)).
				WithError(err)
			s.logger.ErrorContext(ctx, "Failed to publish created event", fields.ToSlice()...)
		}
	}
	return id, nil
}

func (s *TransactionService) SelectRecent(ctx context.Context, owner string, limit int, since *time.Time) ([]core.Transaction, error) {
	return s.store.SelectRecent(ctx, owner, limit, since)
}

func (s *TransactionService) DeleteByID(ctx context.Context, owner, id string) error {
	if err := s.store.DeleteByID(ctx, owner, id); err != nil {
		if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrMissingOwner) {
			return err
		}
		return fmt.Errorf("delete transaction: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishDeleted(ctx, core.Transaction{ID: id, Owner: owner}); err != nil {
			fields := log.NewFields().
				WithOperation(log.OpDelete).
				WithError(err)
			fields[log.FieldTxID] = id
			fields[log.FieldOwner] = owner
			s.logger.ErrorContext(ctx, "Failed to publish deleted event", fields.ToSlice()...)
		}
	}
	return nil
}
