package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"financas/internal/core"
)

// Event types carried on the exchange.
const (
	EventCreated = "transaction.created"
	EventDeleted = "transaction.deleted"
)

// TransactionEvent is the full record of a created or deleted transaction,
// so consumers never read back from the store.
type TransactionEvent struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Owner       string    `json:"user_id"`
	Value       string    `json:"valor"`
	Category    string    `json:"categoria"`
	Kind        string    `json:"tipo"`
	Description string    `json:"descricao"`
	OccurredAt  time.Time `json:"data"`
	Timestamp   time.Time `json:"timestamp"`
}

func newEvent(eventType string, t core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Type:        eventType,
		ID:          t.ID,
		Owner:       t.Owner,
		Value:       t.Value.StringFixed(2),
		Category:    t.Category,
		Kind:        string(t.Kind),
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
		Timestamp:   time.Now(),
	}
}

func NewCreatedEvent(t core.Transaction) *TransactionEvent { return newEvent(EventCreated, t) }

func NewDeletedEvent(t core.Transaction) *TransactionEvent { return newEvent(EventDeleted, t) }

func (m *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EventFromJSON decodes and checks an event body.
func EventFromJSON(data []byte) (*TransactionEvent, error) {
	var msg TransactionEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type != EventCreated && msg.Type != EventDeleted {
		return nil, fmt.Errorf("unknown event type %q", msg.Type)
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("event without transaction id")
	}
	return &msg, nil
}

// Transaction rebuilds the transaction carried by the event.
func (m *TransactionEvent) Transaction() (core.Transaction, error) {
	value, err := decimal.NewFromString(m.Value)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse event value %q: %w", m.Value, err)
	}
	kind, err := core.ParseKind(m.Kind)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse event kind %q: %w", m.Kind, err)
	}
	return core.Transaction{
		ID:          m.ID,
		Value:       value,
		Category:    m.Category,
		Kind:        kind,
		Description: m.Description,
		Owner:       m.Owner,
		OccurredAt:  m.OccurredAt,
	}, nil
}
