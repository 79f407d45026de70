package interpreter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"financas/internal/core"
	"financas/internal/store"
)

// ExcerptSize is how many recent transactions a report shows.
const ExcerptSize = 5

// Summary is the aggregate over one report window.
type Summary struct {
	Window  Window
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
	Count   int
	Recent  []core.Transaction
}

type Aggregator struct {
	store store.RecentSelector
	now   func() time.Time
}

func NewAggregator(s store.RecentSelector, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{store: s, now: now}
}

// Report fetches the owner's transactions inside window and summarizes them.
func (a *Aggregator) Report(ctx context.Context, owner string, window Window) (Summary, error) {
	start, end := window.Range(a.now())
	txs, err := a.store.SelectRecent(ctx, owner, 0, &start)
	if err != nil {
		return Summary{}, storeError("select report window", err)
	}
	if end != nil {
		txs = Before(txs, *end)
	}
	return Summarize(window, txs), nil
}

// Before keeps the transactions that occurred strictly before end. It
// filters in place.
func Before(txs []core.Transaction, end time.Time) []core.Transaction {
	kept := txs[:0]
	for _, t := range txs {
		if t.OccurredAt.Before(end) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Summarize reduces txs, ordered most-recent-first, into totals.
func Summarize(window Window, txs []core.Transaction) Summary {
	s := Summary{Window: window, Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range txs {
		switch t.Kind {
		case core.Income:
			s.Income = s.Income.Add(t.Value)
		case core.Expense:
			s.Expense = s.Expense.Add(t.Value)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	s.Count = len(txs)
	n := min(len(txs), ExcerptSize)
	s.Recent = append([]core.Transaction(nil), txs[:n]...)
	return s
}
