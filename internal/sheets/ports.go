// Package sheets declares the spreadsheet mirror fed by the sync worker.
package sheets

import (
	"context"

	"financas/internal/core"
)

type (
	// Mirror keeps a copy of every transaction, one row each.
	Mirror interface {
		// AppendTransaction adds a row for t and returns a row reference.
		AppendTransaction(ctx context.Context, t core.Transaction) (rowRef string, err error)
		// DeleteTransaction removes the row holding id. Missing rows are
		// not an error.
		DeleteTransaction(ctx context.Context, id string) error
	}
)
