package interpreter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// CategoryEntry maps any of its keywords to the canonical Name.
type CategoryEntry struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Lexicon is the keyword table driving classification. Entries are checked
// in order, so earlier entries take priority.
//
// IncomeSignals mark a message as income and are removed before the
// category is inferred ("ganhei", "recebi"). IncomeCategories also mark a
// message as income but name the category ("salario", "freela").
// ExpenseCategories canonicalize expense categories.
type Lexicon struct {
	Version           string          `json:"version"`
	IncomeSignals     []string        `json:"income_signals"`
	IncomeCategories  []CategoryEntry `json:"income_categories"`
	ExpenseCategories []CategoryEntry `json:"expense_categories"`
}

// LoadLexicon reads a lexicon from a JSON file. Keywords are normalized on
// load so files may use accents and capitals.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %q: %w", path, err)
	}
	var lex Lexicon
	if err := json.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon %q: %w", path, err)
	}
	if len(lex.IncomeSignals) == 0 && len(lex.IncomeCategories) == 0 {
		return nil, fmt.Errorf("lexicon %q has no income keywords", path)
	}
	return lex.normalized(), nil
}

func (l *Lexicon) normalized() *Lexicon {
	out := &Lexicon{Version: l.Version}
	for _, s := range l.IncomeSignals {
		if s = Normalize(s); s != "" {
			out.IncomeSignals = append(out.IncomeSignals, s)
		}
	}
	out.IncomeCategories = normalizeEntries(l.IncomeCategories)
	out.ExpenseCategories = normalizeEntries(l.ExpenseCategories)
	return out
}

func normalizeEntries(in []CategoryEntry) []CategoryEntry {
	out := make([]CategoryEntry, 0, len(in))
	for _, e := range in {
		name := Normalize(e.Name)
		if name == "" {
			continue
		}
		entry := CategoryEntry{Name: name}
		for _, kw := range append([]string{name}, e.Keywords...) {
			if kw = Normalize(kw); kw != "" {
				entry.Keywords = append(entry.Keywords, kw)
			}
		}
		out = append(out, entry)
	}
	return out
}

// IsIncome reports whether any income keyword occurs anywhere in text.
func (l *Lexicon) IsIncome(text string) bool {
	for _, kw := range l.incomeKeywords() {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func (l *Lexicon) incomeKeywords() []string {
	kws := append([]string(nil), l.IncomeSignals...)
	for _, e := range l.IncomeCategories {
		kws = append(kws, e.Keywords...)
	}
	return kws
}

// isSignal reports whether tok is an income signal word.
func (l *Lexicon) isSignal(tok string) bool {
	for _, s := range l.IncomeSignals {
		if tok == s {
			return true
		}
	}
	return false
}

// Canonical returns the first entry, in table order, with a keyword equal
// to one of the words.
func Canonical(entries []CategoryEntry, words []string) (string, bool) {
	for _, e := range entries {
		for _, kw := range e.Keywords {
			for _, w := range words {
				if w == kw {
					return e.Name, true
				}
			}
		}
	}
	return "", false
}

// DefaultLexicon returns the built-in table used when no file is configured.
func DefaultLexicon() *Lexicon {
	lex := &Lexicon{
		Version:       "2025-01",
		IncomeSignals: []string{"receita", "ganhei", "ganho", "recebi", "recebo", "renda"},
		IncomeCategories: []CategoryEntry{
			{Name: "salario", Keywords: []string{"salário"}},
			{Name: "freelance"},
			{Name: "freela"},
			{Name: "bonus", Keywords: []string{"bônus"}},
			{Name: "comissao", Keywords: []string{"comissão"}},
			{Name: "venda", Keywords: []string{"vendi", "vendas"}},
			{Name: "rendimento", Keywords: []string{"rendimentos"}},
			{Name: "trabalho"},
			{Name: "pagamento"},
			{Name: "extra"},
		},
	}
	for _, name := range []string{
		"mercado", "supermercado", "gasolina", "combustivel", "posto",
		"loja", "salao", "farmacia", "drogaria", "aluguel", "rent",
		"restaurante", "lanche", "comida", "food", "uber", "taxi",
		"conta", "luz", "agua", "internet", "celular", "telefone",
		"medico", "hospital", "dentista", "roupas", "vestuario",
		"casa", "decoracao", "moveis", "eletronicos", "games",
		"cinema", "entretenimento", "curso", "educacao", "livro",
		"transporte", "onibus", "metro", "estacionamento", "pedagio", "jantinha",
	} {
		lex.ExpenseCategories = append(lex.ExpenseCategories, CategoryEntry{Name: name})
	}
	return lex.normalized()
}
