package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"financas/internal/core"
	"financas/internal/log"
	"financas/internal/store"

	_ "modernc.org/sqlite"
)

const table = "transacoes"

var columns = []string{"id", "valor", "categoria", "tipo", "descricao", "user_id", "data"}

var _ store.Store = (*SQLiteRepository)(nil)

// SQLiteRepository stores transactions in the transacoes table. Amounts are
// kept as decimal text and timestamps as unix nanoseconds.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Insert(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	t.ID = uuid.NewString()
	if t.OccurredAt.IsZero() {
		t.OccurredAt = r.now()
	}

	query, args, err := sq.Insert(table).
		Columns(columns...).
		Values(t.ID, t.Value.StringFixed(2), t.Category, string(t.Kind), t.Description, t.Owner, t.OccurredAt.UnixNano()).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	log.FromContext(ctx).WithComponent(log.ComponentStorage).DebugContext(ctx, "Transaction saved to SQLite",
		log.FieldTxID, t.ID,
		log.FieldOwner, t.Owner,
		log.FieldKind, t.Kind,
		log.FieldCategory, t.Category)
	return t.ID, nil
}

func (r *SQLiteRepository) SelectRecent(ctx context.Context, owner string, limit int, since *time.Time) ([]core.Transaction, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, core.ErrMissingOwner
	}
	b := sq.Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": owner}).
		OrderBy("data DESC", "rowid DESC")
	if since != nil {
		b = b.Where(sq.GtOrEq{"data": since.UnixNano()})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, owner, id string) error {
	if strings.TrimSpace(owner) == "" {
		return core.ErrMissingOwner
	}
	query, args, err := sq.Delete(table).
		Where(sq.Eq{"id": id, "user_id": owner}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		t         core.Transaction
		valor     string
		kind      string
		unixNanos int64
	)
	if err := rows.Scan(&t.ID, &valor, &t.Category, &kind, &t.Description, &t.Owner, &unixNanos); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	value, err := decimal.NewFromString(valor)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse valor %q: %w", valor, err)
	}
	t.Value = value
	t.Kind = core.Kind(kind)
	if !t.Kind.Valid() {
		return core.Transaction{}, errors.Join(core.ErrInvalidKind, fmt.Errorf("row %s has tipo %q", t.ID, kind))
	}
	t.OccurredAt = time.Unix(0, unixNanos)
	return t, nil
}
