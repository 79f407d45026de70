package interpreter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLexicon(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadLexicon(t *testing.T) {
	path := writeLexicon(t, `{
		"version": "test",
		"income_signals": ["Recebí", "ganhei"],
		"income_categories": [{"name": "Salário"}],
		"expense_categories": [
			{"name": "Alimentação", "keywords": ["Mercado", "padaria"]},
			{"name": "mercado"}
		]
	}`)
	lex, err := LoadLexicon(path)
	require.NoError(t, err)

	assert.Equal(t, "test", lex.Version)
	assert.Equal(t, []string{"recebi", "ganhei"}, lex.IncomeSignals)
	assert.Equal(t, "salario", lex.IncomeCategories[0].Name)
	assert.Equal(t, []string{"alimentacao", "mercado", "padaria"}, lex.ExpenseCategories[0].Keywords)

	// Earlier entries win.
	name, ok := Canonical(lex.ExpenseCategories, []string{"mercado"})
	require.True(t, ok)
	assert.Equal(t, "alimentacao", name)
}

func TestLoadLexiconErrors(t *testing.T) {
	_, err := LoadLexicon(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadLexicon(writeLexicon(t, `{not json`))
	assert.Error(t, err)

	_, err = LoadLexicon(writeLexicon(t, `{"expense_categories": [{"name": "mercado"}]}`))
	assert.ErrorContains(t, err, "no income keywords")
}

func TestDefaultLexicon(t *testing.T) {
	lex := DefaultLexicon()
	assert.True(t, lex.IsIncome("ganhei 500 freela"))
	assert.True(t, lex.IsIncome("salario 3000"))
	assert.True(t, lex.IsIncome("comissao da venda"))
	assert.False(t, lex.IsIncome("40 mercado"))
	assert.False(t, lex.IsIncome("150 conta de luz"))
	assert.True(t, lex.IsIncome("pagamento 1000"))
	assert.True(t, lex.IsIncome("100 trabalho"))
	assert.True(t, lex.IsIncome("renda extra 80"))
	assert.False(t, lex.IsIncome("pago 50 luz"), "pago also means paid")

	_, ok := Canonical(lex.ExpenseCategories, []string{"presente"})
	assert.False(t, ok)
	name, ok := Canonical(lex.ExpenseCategories, []string{"no", "uber"})
	require.True(t, ok)
	assert.Equal(t, "uber", name)
}
