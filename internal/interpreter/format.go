package interpreter

import (
	"fmt"
	"strings"

	"financas/internal/core"
)

// ListSize is how many transactions the list command shows.
const ListSize = 5

func kindEmoji(k core.Kind) string {
	if k == core.Income {
		return "💚"
	}
	return "💸"
}

func signedAmount(t core.Transaction) string {
	return t.Kind.Sign() + "R$ " + core.FormatAmount(t.Value)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatRegistered confirms a stored transaction.
func FormatRegistered(t core.Transaction) string {
	label := "Despesa"
	if t.Kind == core.Income {
		label = "Receita"
	}
	return fmt.Sprintf("✅ %s registrada!\n%s %s: %s", label, kindEmoji(t.Kind), t.Category, signedAmount(t))
}

// FormatList renders the recent transactions, numbered from 1 so the
// numbers can be used with "apagar <n>".
func FormatList(txs []core.Transaction) string {
	if len(txs) == 0 {
		return "Nenhuma transação encontrada."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Últimas %d transações:*\n\n", len(txs))
	for i, t := range txs {
		fmt.Fprintf(&b, "%d. %s %s: %s\n", i+1, kindEmoji(t.Kind), t.Category, signedAmount(t))
		fmt.Fprintf(&b, "   📅 %s | ID: %s\n\n", t.OccurredAt.Format("02/01/2006"), shortID(t.ID))
	}
	b.WriteString(`💡 Para apagar: "apagar 1" ou "apagar último"`)
	return b.String()
}

// FormatDeleted confirms a deletion with the removed category and amount.
func FormatDeleted(t core.Transaction) string {
	return fmt.Sprintf("🗑️ Transação apagada: %s %s: %s", kindEmoji(t.Kind), t.Category, signedAmount(t))
}

// FormatReport renders a window summary with its recent excerpt.
func FormatReport(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Relatório (%s)*\n\n", s.Window.Label())
	fmt.Fprintf(&b, "💚 Receitas: R$ %s\n", core.FormatAmount(s.Income))
	fmt.Fprintf(&b, "💸 Despesas: R$ %s\n", core.FormatAmount(s.Expense))
	fmt.Fprintf(&b, "💰 Saldo: %s\n", core.FormatReais(s.Balance))
	fmt.Fprintf(&b, "🔢 Transações: %d", s.Count)
	if len(s.Recent) > 0 {
		b.WriteString("\n\n*Recentes:*")
		for _, t := range s.Recent {
			fmt.Fprintf(&b, "\n%s %s: %s", kindEmoji(t.Kind), t.Category, signedAmount(t))
		}
	}
	return b.String()
}

func FormatDashboardLink(link string) string {
	return "📈 Seu dashboard: " + link
}

const (
	HelpReply = "🤖 *Comandos disponíveis:*\n\n" +
		"💸 Despesa: \"40 mercado\", \"25,50 uber\"\n" +
		"💚 Receita: \"ganhei 500 freela\", \"+100 salário\"\n" +
		"📋 \"listar\": últimas transações\n" +
		"🗑️ \"apagar último\", \"apagar 2\" ou \"apagar mercado\"\n" +
		"📊 \"relatorio\", \"saldo\", \"hoje\", \"semana\", \"mes\", \"mes passado\"\n" +
		"📈 \"dashboard\": link do seu painel"

	UsageReply = "❓ Não entendi. Exemplos:\n" +
		"• \"40 mercado\"\n" +
		"• \"ganhei 500 freela\"\n" +
		"• \"+100 salário\"\n" +
		"Envie \"ajuda\" para ver todos os comandos."

	NotFoundReply    = "🔍 Nenhuma transação correspondente encontrada."
	StoreErrorReply  = "⚠️ Não foi possível acessar suas transações agora. Tente novamente em instantes."
	NoDashboardReply = "📈 O dashboard não está disponível no momento."
	GenericReply     = "❌ Não foi possível processar sua mensagem."
)
