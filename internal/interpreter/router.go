package interpreter

import (
	"strconv"
	"strings"
)

// Rule is one entry of the ordered dispatch table. Match receives the
// normalized text and its words and reports whether the rule applies.
type Rule struct {
	Name  string
	Match func(text string, words []string) (Intent, bool)
}

// Router evaluates its rules in order; the first match wins. Text that
// matches no rule is a RegisterTransaction.
type Router struct {
	rules []Rule
}

func NewRouter(rules ...Rule) *Router {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Router{rules: rules}
}

// Route resolves normalized text to exactly one intent.
func (r *Router) Route(text string) Intent {
	words := tokens(text)
	for _, rule := range r.rules {
		if intent, ok := rule.Match(text, words); ok {
			return intent
		}
	}
	return Intent{Kind: RegisterTransaction}
}

// Rules returns the names of the rules in evaluation order.
func (r *Router) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// DefaultRules is delete, list, help, dashboard, report in that order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "delete", Match: matchDelete},
		{Name: "list", Match: matchKeyword(Intent{Kind: ListRecent}, "listar", "lista", "historico")},
		{Name: "help", Match: matchKeyword(Intent{Kind: Help}, "ajuda", "help")},
		{Name: "dashboard", Match: matchKeyword(Intent{Kind: DashboardLink}, "dashboard")},
		{Name: "report", Match: matchReport},
	}
}

func indexOf(words []string, candidates ...string) int {
	for i, w := range words {
		for _, c := range candidates {
			if w == c {
				return i
			}
		}
	}
	return -1
}

func matchKeyword(intent Intent, keywords ...string) func(string, []string) (Intent, bool) {
	return func(_ string, words []string) (Intent, bool) {
		return intent, indexOf(words, keywords...) >= 0
	}
}

func matchDelete(_ string, words []string) (Intent, bool) {
	at := indexOf(words, "apagar", "deletar")
	if at < 0 {
		return Intent{}, false
	}
	rest := words[at+1:]
	if indexOf(rest, "ultimo", "ultima") >= 0 {
		return Intent{Kind: DeleteLast}, true
	}
	if len(rest) > 0 {
		if n, err := strconv.Atoi(strings.TrimPrefix(rest[0], "#")); err == nil {
			return Intent{Kind: DeleteByIndex, Index: n}, true
		}
	}
	return Intent{Kind: DeleteByDescription, Query: strings.Join(rest, " ")}, true
}

func matchReport(_ string, words []string) (Intent, bool) {
	window, found := windowOf(words)
	if found || indexOf(words, "relatorio", "saldo") >= 0 {
		return Intent{Kind: Report, Window: window}, true
	}
	return Intent{}, false
}

// windowOf returns the window named by the first time-word in words.
func windowOf(words []string) (Window, bool) {
	for i, w := range words {
		switch w {
		case "hoje":
			return WindowToday, true
		case "semana":
			return WindowWeek, true
		case "mes":
			if i+1 < len(words) && words[i+1] == "passado" {
				return WindowLastMonth, true
			}
			return WindowMonth, true
		}
	}
	return WindowDefault, false
}
