package worker

import (
	"context"
	"errors"
	"fmt"

	"financas/internal/amqp"
	"financas/internal/log"
	"financas/internal/sheets"
)

// SyncWorker mirrors transaction events into a spreadsheet.
type SyncWorker struct {
	mirror sheets.Mirror
	logger *log.Logger
}

func NewSyncWorker(mirror sheets.Mirror, logger *log.Logger) *SyncWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &SyncWorker{mirror: mirror, logger: logger.WithComponent(log.ComponentWorker)}
}

// HandleEvent applies a single event. A returned error requeues the delivery.
func (w *SyncWorker) HandleEvent(ctx context.Context, evt *amqp.TransactionEvent) error {
	if evt == nil {
		return errors.New("nil event")
	}
	if w.mirror == nil {
		w.logger.WarnContext(ctx, "No mirror configured, dropping event",
			log.FieldEventType, evt.Type,
			log.FieldTxID, evt.ID)
		return nil
	}

	switch evt.Type {
	case amqp.EventCreated:
		return w.handleCreated(ctx, evt)
	case amqp.EventDeleted:
		return w.handleDeleted(ctx, evt)
	default:
		w.logger.WarnContext(ctx, "Ignoring unknown event type",
			log.FieldEventType, evt.Type,
			log.FieldTxID, evt.ID)
		return nil
	}
}

func (w *SyncWorker) handleCreated(ctx context.Context, evt *amqp.TransactionEvent) error {
	tx, err := evt.Transaction()
	if err != nil {
		// Redelivery cannot fix a malformed payload.
		w.logger.ErrorContext(ctx, "Dropping malformed created event",
			log.FieldTxID, evt.ID,
			log.FieldError, err)
		return nil
	}

	ref, err := w.mirror.AppendTransaction(ctx, tx)
	if err != nil {
		return fmt.Errorf("append transaction %s: %w", tx.ID, err)
	}

	w.logger.InfoContext(ctx, "Synced transaction",
		log.FieldOperation, log.OpSync,
		log.FieldTxID, tx.ID,
		log.FieldOwner, tx.Owner,
		log.FieldCategory, tx.Category,
		"sheets_ref", ref)
	return nil
}

func (w *SyncWorker) handleDeleted(ctx context.Context, evt *amqp.TransactionEvent) error {
	if err := w.mirror.DeleteTransaction(ctx, evt.ID); err != nil {
		return fmt.Errorf("delete transaction %s: %w", evt.ID, err)
	}
	w.logger.InfoContext(ctx, "Removed transaction from mirror",
		log.FieldTxID, evt.ID,
		log.FieldOwner, evt.Owner)
	return nil
}
