package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financas/internal/config"
	"financas/internal/core"
)

func exercise(t *testing.T, res *Result) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, res.Ping(ctx))

	id, err := res.Store.Insert(ctx, core.Transaction{
		Owner: "ana", Category: "mercado", Kind: core.Expense, Value: decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	got, err := res.Store.SelectRecent(ctx, "ana", 5, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)

	require.NoError(t, res.Store.DeleteByID(ctx, "ana", id))
	assert.ErrorIs(t, res.Store.DeleteByID(ctx, "ana", id), core.ErrNotFound)
}

func TestMemoryBackend(t *testing.T) {
	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: MemoryBackend})
	require.NoError(t, err)
	defer res.Close()
	exercise(t, res)
}

func TestSQLiteBackendMigratesOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "financas.db")
	res, err := NewFactory(nil).CreateBackend(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: path,
	})
	require.NoError(t, err)
	defer res.Close()
	exercise(t, res)
}

func TestInvalidBackend(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: "sheets"})
	assert.ErrorContains(t, err, "invalid backend type")
	assert.False(t, Type("sheets").IsValid())
}

func TestFromAppConfig(t *testing.T) {
	c := FromAppConfig(&config.Config{
		DataBackend:  config.BackendPostgres,
		PostgresURL:  "postgres://u:p@localhost/db",
		AMQPURL:      "amqp://localhost",
		AMQPExchange: "financas",
		AMQPQueue:    "sync_transacoes",
	})
	assert.Equal(t, PostgresBackend, c.Type)
	assert.True(t, c.Type.IsValid())
	assert.True(t, c.Migrate)
	assert.Equal(t, "sync_transacoes", c.AMQPQueue)
}

func TestNilResultClose(t *testing.T) {
	var r *Result
	assert.NoError(t, r.Close())
}
