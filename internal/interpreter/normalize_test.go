package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"Salário", "salario"},
		{"  APAGAR Último  ", "apagar ultimo"},
		{"Relatório do Mês", "relatorio do mes"},
		{"Farmácia São João", "farmacia sao joao"},
		{"ação çedilha", "acao cedilha"},
		{"40,50 lanche", "40,50 lanche"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"Ganhei 500 FREELA", "Comissão de Vendas", "+100 salário"} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"apagar", "#2"}, tokens("apagar #2"))
	assert.Equal(t, []string{"r", "40", "50", "mercado"}, tokens("r$ 40,50 mercado!"))
	assert.Empty(t, tokens("  ...  "))
}
