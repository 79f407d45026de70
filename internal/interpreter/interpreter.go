// Package interpreter turns one free-text chat message into either a stored
// transaction or a management command, and renders the reply.
package interpreter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"financas/internal/core"
	"financas/internal/log"
	"financas/internal/store"
)

const maxDescriptionBytes = 500

// LinkBuilder produces the per-owner dashboard address.
type LinkBuilder interface {
	DashboardLink(owner string) (string, error)
}

// Result is the structured outcome of one message. Exactly one of the
// payload fields is set, matching Intent.Kind.
type Result struct {
	Intent       Intent
	Transaction  *core.Transaction
	Transactions []core.Transaction
	Summary      *Summary
	Link         string
	Reply        string
}

type Interpreter struct {
	store      store.Store
	router     *Router
	extractor  *Extractor
	resolver   *Resolver
	aggregator *Aggregator
	links      LinkBuilder
	logger     *log.Logger
	now        func() time.Time
}

type Option func(*Interpreter)

// WithLexicon replaces the built-in keyword table.
func WithLexicon(lex *Lexicon) Option {
	return func(i *Interpreter) { i.extractor = NewExtractor(lex) }
}

func WithLinks(lb LinkBuilder) Option {
	return func(i *Interpreter) { i.links = lb }
}

func WithLogger(l *log.Logger) Option {
	return func(i *Interpreter) { i.logger = l }
}

// WithClock fixes "now" for report windows and new transactions.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// WithRouter replaces the default rule table.
func WithRouter(r *Router) Option {
	return func(i *Interpreter) { i.router = r }
}

func New(s store.Store, opts ...Option) *Interpreter {
	i := &Interpreter{
		store:     s,
		router:    NewRouter(),
		extractor: NewExtractor(nil),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentInterpreter)
	}
	i.resolver = NewResolver(s)
	i.aggregator = NewAggregator(s, i.now)
	return i
}

// Handle interprets the message and always returns a reply. Errors are
// mapped to user-facing text; store failures are logged.
func (i *Interpreter) Handle(ctx context.Context, owner, raw string) string {
	res, err := i.Interpret(ctx, owner, raw)
	if err == nil {
		return res.Reply
	}
	switch {
	case errors.Is(err, core.ErrNoMatch), errors.Is(err, core.ErrInvalidAmount):
		return UsageReply
	case errors.Is(err, core.ErrNotFound):
		return NotFoundReply
	case errors.Is(err, core.ErrStoreUnavailable):
		i.logger.ErrorContext(ctx, "Store call failed",
			log.FieldOwner, owner,
			log.FieldIntent, res.Intent.Kind.String(),
			log.FieldError, err)
		return StoreErrorReply
	default:
		i.logger.WarnContext(ctx, "Message not processed",
			log.FieldOwner, owner,
			log.FieldIntent, res.Intent.Kind.String(),
			log.FieldError, err)
		return GenericReply
	}
}

// Interpret routes the message and performs the matching store calls. The
// returned Result carries the intent even when err is not nil.
func (i *Interpreter) Interpret(ctx context.Context, owner, raw string) (Result, error) {
	text := Normalize(raw)
	res := Result{Intent: i.router.Route(text)}
	if strings.TrimSpace(owner) == "" {
		return res, core.ErrMissingOwner
	}

	switch res.Intent.Kind {
	case RegisterTransaction:
		t, err := i.register(ctx, owner, raw, text)
		if err != nil {
			return res, err
		}
		res.Transaction = &t
		res.Reply = FormatRegistered(t)

	case ListRecent:
		txs, err := i.store.SelectRecent(ctx, owner, ListSize, nil)
		if err != nil {
			return res, storeError("list recent", err)
		}
		res.Transactions = txs
		res.Reply = FormatList(txs)

	case DeleteLast, DeleteByIndex, DeleteByDescription:
		t, err := i.resolver.Delete(ctx, owner, res.Intent)
		if err != nil {
			return res, err
		}
		res.Transaction = &t
		res.Reply = FormatDeleted(t)

	case Report:
		s, err := i.aggregator.Report(ctx, owner, res.Intent.Window)
		if err != nil {
			return res, err
		}
		res.Summary = &s
		res.Reply = FormatReport(s)

	case Help:
		res.Reply = HelpReply

	case DashboardLink:
		if i.links == nil {
			res.Reply = NoDashboardReply
			break
		}
		link, err := i.links.DashboardLink(owner)
		if err != nil {
			return res, fmt.Errorf("build dashboard link: %w", err)
		}
		res.Link = link
		res.Reply = FormatDashboardLink(link)

	default:
		return res, fmt.Errorf("unhandled intent %s", res.Intent.Kind)
	}

	i.logger.DebugContext(ctx, "Message interpreted",
		log.FieldOwner, owner,
		log.FieldIntent, res.Intent.Kind.String())
	return res, nil
}

func (i *Interpreter) register(ctx context.Context, owner, raw, text string) (core.Transaction, error) {
	ex, err := i.extract(raw, text)
	if err != nil {
		return core.Transaction{}, err
	}
	desc := ex.Description
	if desc == "" {
		desc = strings.TrimSpace(raw)
	}
	t := core.Transaction{
		Value:       ex.Value,
		Category:    ex.Category,
		Kind:        ex.Kind,
		Description: truncate(desc, maxDescriptionBytes),
		Owner:       owner,
		OccurredAt:  i.now(),
	}
	id, err := i.store.Insert(ctx, t)
	if err != nil {
		return core.Transaction{}, storeError("insert transaction", err)
	}
	t.ID = id
	return t, nil
}

// extract uses the quick-entry form whenever the raw text carries a sign.
// A signed text that is not "<sign><amount> <category>" is a NoMatch; the
// sign decides the kind, so keywords are never consulted for it.
func (i *Interpreter) extract(raw, text string) (Extraction, error) {
	if HasSignPrefix(raw) {
		return i.extractor.ParseQuick(raw)
	}
	return i.extractor.Extract(text)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	s = s[:max]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
