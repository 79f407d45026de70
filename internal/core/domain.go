package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "receita"
	Expense Kind = "despesa"
)

type (
	// Kind is persisted as the Portuguese label used by the chat surface
	// and the dashboard ("receita" / "despesa").
	Kind string

	Transaction struct {
		ID          string
		Value       decimal.Decimal
		Category    string
		Kind        Kind
		Description string
		Owner       string
		OccurredAt  time.Time
	}
)

var (
	ErrNoMatch          = errors.New("no transaction or command matched")
	ErrNotFound         = errors.New("transaction not found")
	ErrStoreUnavailable = errors.New("transaction store unavailable")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrMissingOwner     = errors.New("missing owner")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidKind      = errors.New("invalid kind")
)

// ParseKind accepts the stored labels as well as their English names.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "receita", "income":
		return Income, nil
	case "despesa", "expense":
		return Expense, nil
	}
	return "", ErrInvalidKind
}

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// Sign returns "+" for income and "-" for expense.
func (k Kind) Sign() string {
	if k == Income {
		return "+"
	}
	return "-"
}

// Signed returns the value with the sign implied by the kind.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == Income {
		return t.Value
	}
	return t.Value.Neg()
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Owner) == "" {
		return ErrMissingOwner
	}
	if !t.Value.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if len(t.Description) > 500 {
		return errors.New("description too long (max 500 characters)")
	}
	return nil
}

// DefaultCategory is the fallback label when nothing usable was extracted.
func DefaultCategory(k Kind) string {
	return string(k)
}
