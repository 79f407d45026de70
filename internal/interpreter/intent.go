package interpreter

import (
	"fmt"
	"strings"
	"time"
)

// IntentKind tags the resolved meaning of one message.
type IntentKind int

const (
	RegisterTransaction IntentKind = iota
	ListRecent
	DeleteLast
	DeleteByIndex
	DeleteByDescription
	Report
	Help
	DashboardLink
)

var intentNames = map[IntentKind]string{
	RegisterTransaction: "register_transaction",
	ListRecent:          "list_recent",
	DeleteLast:          "delete_last",
	DeleteByIndex:       "delete_by_index",
	DeleteByDescription: "delete_by_description",
	Report:              "report",
	Help:                "help",
	DashboardLink:       "dashboard_link",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return fmt.Sprintf("intent(%d)", int(k))
}

// Intent is created per message and discarded once a reply is produced.
// Index is set for DeleteByIndex, Query for DeleteByDescription and Window
// for Report.
type Intent struct {
	Kind   IntentKind
	Index  int
	Query  string
	Window Window
}

// IsDelete reports whether the intent removes a stored transaction.
func (i Intent) IsDelete() bool {
	switch i.Kind {
	case DeleteLast, DeleteByIndex, DeleteByDescription:
		return true
	}
	return false
}

// Window selects the time range of a report.
type Window int

const (
	WindowDefault Window = iota
	WindowToday
	WindowWeek
	WindowMonth
	WindowLastMonth
)

// DefaultLookbackMonths is the range used when a report names no window.
const DefaultLookbackMonths = 3

// Range returns the inclusive start and exclusive end of the window. End
// is nil for windows that run up to now.
func (w Window) Range(now time.Time) (start time.Time, end *time.Time) {
	y, m, d := now.Date()
	switch w {
	case WindowToday:
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	case WindowWeek:
		return now.AddDate(0, 0, -7), nil
	case WindowMonth:
		return now.AddDate(0, 0, -30), nil
	case WindowLastMonth:
		first := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		return first.AddDate(0, -1, 0), &first
	default:
		return now.AddDate(0, -DefaultLookbackMonths, 0), nil
	}
}

// Label is the Portuguese caption used in report replies.
func (w Window) Label() string {
	switch w {
	case WindowToday:
		return "hoje"
	case WindowWeek:
		return "últimos 7 dias"
	case WindowMonth:
		return "últimos 30 dias"
	case WindowLastMonth:
		return "mês passado"
	default:
		return "últimos 3 meses"
	}
}

func (w Window) String() string {
	switch w {
	case WindowToday:
		return "today"
	case WindowWeek:
		return "week"
	case WindowMonth:
		return "month"
	case WindowLastMonth:
		return "last_month"
	default:
		return "default"
	}
}

// ParseWindow accepts the names returned by String.
func ParseWindow(s string) (Window, bool) {
	for _, w := range []Window{WindowDefault, WindowToday, WindowWeek, WindowMonth, WindowLastMonth} {
		if w.String() == strings.ToLower(strings.TrimSpace(s)) {
			return w, true
		}
	}
	return WindowDefault, false
}
