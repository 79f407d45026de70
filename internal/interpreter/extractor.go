package interpreter

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"financas/internal/core"
)

var (
	// First amount: "40", "40,5", "40.50".
	reAmount = regexp.MustCompile(`\d+(?:[.,]\d{1,2})?`)
	// Every number-like run, removed before the category is inferred.
	reNumbers = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	// Quick-entry form: "+100 salário", "-25 uber", "40 mercado".
	reQuick = regexp.MustCompile(`^([+-])?\s*(\d+(?:[.,]\d{1,2})?)\s+(.+)$`)
)

// Currency words dropped from the leftover category text.
var currencyWords = map[string]struct{}{"r": {}, "rs": {}, "reais": {}, "real": {}, "brl": {}}

// Extraction is the structured result of parsing a transaction message.
type Extraction struct {
	Value       decimal.Decimal
	Category    string
	Kind        core.Kind
	Description string
}

type Extractor struct {
	lex *Lexicon
}

// NewExtractor returns an extractor over lex, or over DefaultLexicon when
// lex is nil.
func NewExtractor(lex *Lexicon) *Extractor {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Extractor{lex: lex}
}

// Extract parses normalized chat text such as "ganhei 500 freela".
// It returns core.ErrNoMatch when no amount is present and
// core.ErrInvalidAmount when the amount is not positive.
func (e *Extractor) Extract(text string) (Extraction, error) {
	raw := reAmount.FindString(text)
	if raw == "" {
		return Extraction{}, core.ErrNoMatch
	}
	value, err := core.ParseAmount(raw)
	if err != nil {
		return Extraction{}, err
	}

	kind := core.Expense
	if e.lex.IsIncome(text) {
		kind = core.Income
	}

	return Extraction{
		Value:    value,
		Kind:     kind,
		Category: e.inferCategory(text, kind),
	}, nil
}

func (e *Extractor) inferCategory(text string, kind core.Kind) string {
	stripped := reNumbers.ReplaceAllString(text, " ")
	var words []string
	for _, tok := range tokens(stripped) {
		if !hasLetter(tok) || e.lex.isSignal(tok) {
			continue
		}
		if _, ok := currencyWords[tok]; ok {
			continue
		}
		words = append(words, tok)
	}

	entries := e.lex.ExpenseCategories
	if kind == core.Income {
		entries = e.lex.IncomeCategories
	}
	if name, ok := Canonical(entries, words); ok {
		return name
	}

	category := strings.Join(words, " ")
	if len([]rune(category)) < 2 {
		return core.DefaultCategory(kind)
	}
	return category
}

// ParseQuick parses the quick-entry form "<sign><amount> <category>" on
// raw, un-normalized input. A leading "+" makes an income; "-" or no sign
// makes an expense. Keywords are not consulted. The category keeps its
// accents and is only lower-cased and trimmed.
func (e *Extractor) ParseQuick(raw string) (Extraction, error) {
	m := reQuick.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Extraction{}, core.ErrNoMatch
	}
	value, err := core.ParseAmount(m[2])
	if err != nil {
		return Extraction{}, err
	}
	kind := core.Expense
	prefix := "Despesa rápida:"
	if m[1] == "+" {
		kind = core.Income
		prefix = "Receita rápida:"
	}
	label := strings.TrimSpace(m[3])
	return Extraction{
		Value:       value,
		Kind:        kind,
		Category:    strings.ToLower(label),
		Description: prefix + " " + label,
	}, nil
}

// HasSignPrefix reports whether raw starts with an explicit "+" or "-".
func HasSignPrefix(raw string) bool {
	raw = strings.TrimSpace(raw)
	return strings.HasPrefix(raw, "+") || strings.HasPrefix(raw, "-")
}
