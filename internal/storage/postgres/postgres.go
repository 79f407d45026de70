// Package postgres stores transactions in a Postgres transacoes table
// compatible with the Supabase schema used by the dashboard.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"financas/internal/core"
	"financas/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const table = "transacoes"

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	selectColumns = []string{"id::text", "valor::text", "categoria", "tipo", "descricao", "user_id", "data"}
)

var _ store.Store = (*Repository)(nil)

type Repository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPool connects to dsn and verifies the connection.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool, now: time.Now}
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Insert(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	t.ID = uuid.NewString()
	if t.OccurredAt.IsZero() {
		t.OccurredAt = r.now()
	}
	query, args, err := insertQuery(t)
	if err != nil {
		return "", fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	return t.ID, nil
}

func (r *Repository) SelectRecent(ctx context.Context, owner string, limit int, since *time.Time) ([]core.Transaction, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, core.ErrMissingOwner
	}
	query, args, err := selectRecentQuery(owner, limit, since)
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
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

func (r *Repository) DeleteByID(ctx context.Context, owner, id string) error {
	if strings.TrimSpace(owner) == "" {
		return core.ErrMissingOwner
	}
	if _, err := uuid.Parse(id); err != nil {
		return core.ErrNotFound
	}
	query, args, err := deleteQuery(owner, id)
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func insertQuery(t core.Transaction) (string, []any, error) {
	return psql.Insert(table).
		Columns("id", "valor", "categoria", "tipo", "descricao", "user_id", "data").
		Values(t.ID, t.Value.StringFixed(2), t.Category, string(t.Kind), t.Description, t.Owner, t.OccurredAt).
		ToSql()
}

func selectRecentQuery(owner string, limit int, since *time.Time) (string, []any, error) {
	b := psql.Select(selectColumns...).
		From(table).
		Where(sq.Eq{"user_id": owner}).
		OrderBy("data DESC", "seq DESC")
	if since != nil {
		b = b.Where(sq.GtOrEq{"data": *since})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return b.ToSql()
}

func deleteQuery(owner, id string) (string, []any, error) {
	return psql.Delete(table).
		Where(sq.Eq{"id": id, "user_id": owner}).
		ToSql()
}

func scanTransaction(row pgx.Row) (core.Transaction, error) {
	var (
		t     core.Transaction
		valor string
		kind  string
	)
	if err := row.Scan(&t.ID, &valor, &t.Category, &kind, &t.Description, &t.Owner, &t.OccurredAt); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	value, err := decimal.NewFromString(valor)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse valor %q: %w", valor, err)
	}
	t.Value = value
	t.Kind = core.Kind(kind)
	return t, nil
}

// MigrateURL rewrites a postgres:// DSN to the pgx5:// scheme expected by
// the migrate pgx driver.
func MigrateURL(dsn string) (string, error) {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix), nil
		}
	}
	if strings.HasPrefix(dsn, "pgx5://") {
		return dsn, nil
	}
	return "", fmt.Errorf("unsupported database url scheme in %q", redact(dsn))
}

// RunMigrations applies every pending migration to the database at dsn.
func RunMigrations(dsn string) error {
	target, err := MigrateURL(dsn)
	if err != nil {
		return err
	}
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", d, target)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func redact(dsn string) string {
	if at := strings.LastIndex(dsn, "@"); at >= 0 {
		if scheme := strings.Index(dsn, "://"); scheme >= 0 && scheme < at {
			return dsn[:scheme+3] + "***" + dsn[at:]
		}
	}
	return dsn
}
