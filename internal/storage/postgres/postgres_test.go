package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financas/internal/core"
)

func TestSelectRecentQuery(t *testing.T) {
	sql, args, err := selectRecentQuery("ana", 10, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id::text, valor::text, categoria, tipo, descricao, user_id, data FROM transacoes WHERE user_id = $1 ORDER BY data DESC, seq DESC LIMIT 10",
		sql)
	assert.Equal(t, []any{"ana"}, args)

	since := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	sql, args, err = selectRecentQuery("ana", 0, &since)
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE user_id = $1 AND data >= $2")
	assert.NotContains(t, sql, "LIMIT")
	assert.Equal(t, []any{"ana", since}, args)
}

func TestInsertQuery(t *testing.T) {
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	sql, args, err := insertQuery(core.Transaction{
		ID: "id-1", Value: decimal.RequireFromString("40.5"), Category: "mercado",
		Kind: core.Expense, Description: "40,5 mercado", Owner: "ana", OccurredAt: at,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO transacoes (id,valor,categoria,tipo,descricao,user_id,data) VALUES ($1,$2,$3,$4,$5,$6,$7)",
		sql)
	assert.Equal(t, []any{"id-1", "40.50", "mercado", "despesa", "40,5 mercado", "ana", at}, args)
}

func TestDeleteQueryIsOwnerScoped(t *testing.T) {
	sql, args, err := deleteQuery("ana", "id-1")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM transacoes WHERE id = $1 AND user_id = $2", sql)
	assert.Equal(t, []any{"id-1", "ana"}, args)
}

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "postgres://u:p@db:5432/financas?sslmode=disable", want: "pgx5://u:p@db:5432/financas?sslmode=disable"},
		{in: "postgresql://db/financas", want: "pgx5://db/financas"},
		{in: "pgx5://db/financas", want: "pgx5://db/financas"},
		{in: "mysql://u:secret@db/financas", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := MigrateURL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.NotContains(t, err.Error(), "secret")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
