package interpreter

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"financas/internal/core"
)

func TestFormatList(t *testing.T) {
	txs := []core.Transaction{
		{ID: "3f2a9c1e-0000-4000-8000-000000000000", Category: "freela", Kind: core.Income,
			Value: decimal.NewFromInt(500), OccurredAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "abc", Category: "mercado", Kind: core.Expense,
			Value: decimal.RequireFromString("40.5"), OccurredAt: time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)},
	}
	got := FormatList(txs)

	assert.Contains(t, got, "Últimas 2 transações")
	assert.Contains(t, got, "1. 💚 freela: +R$ 500.00")
	assert.Contains(t, got, "📅 10/03/2025 | ID: 3f2a9c1e\n")
	assert.Contains(t, got, "2. 💸 mercado: -R$ 40.50")
	assert.Contains(t, got, "ID: abc\n")
	assert.True(t, strings.HasSuffix(got, `"apagar último"`))
}

func TestFormatListEmpty(t *testing.T) {
	assert.Equal(t, "Nenhuma transação encontrada.", FormatList(nil))
}

func TestFormatReport(t *testing.T) {
	s := Summary{
		Window:  WindowToday,
		Income:  decimal.NewFromInt(100),
		Expense: decimal.NewFromInt(250),
		Balance: decimal.NewFromInt(-150),
		Count:   3,
	}
	got := FormatReport(s)
	assert.Contains(t, got, "Relatório (hoje)")
	assert.Contains(t, got, "Receitas: R$ 100.00")
	assert.Contains(t, got, "Despesas: R$ 250.00")
	assert.Contains(t, got, "Saldo: -R$ 150.00")
	assert.Contains(t, got, "Transações: 3")
	assert.NotContains(t, got, "Recentes")
}

func TestFormatRegisteredAndDeleted(t *testing.T) {
	tx := core.Transaction{Category: "uber", Kind: core.Expense, Value: decimal.NewFromInt(25)}
	assert.Contains(t, FormatRegistered(tx), "Despesa registrada")
	assert.Contains(t, FormatRegistered(tx), "uber: -R$ 25.00")
	assert.Contains(t, FormatDeleted(tx), "apagada")
	assert.Contains(t, FormatDeleted(tx), "uber: -R$ 25.00")

	tx.Kind = core.Income
	assert.Contains(t, FormatRegistered(tx), "Receita registrada")
	assert.Contains(t, FormatRegistered(tx), "+R$ 25.00")
}
