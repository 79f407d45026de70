package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"financas/internal/core"
	"financas/internal/interpreter"
	"financas/internal/log"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type createRequest struct {
	Value       decimal.Decimal `json:"valor"`
	Category    string          `json:"categoria"`
	Kind        string          `json:"tipo"`
	Description string          `json:"descricao"`
	Owner       string          `json:"user_id"`
}

type deleteRequest struct {
	Owner string `json:"user_id"`
}

type quickRequest struct {
	Text  string `json:"texto"`
	Owner string `json:"user_id"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "JSON inválido", err.Error())
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	req.Owner = strings.TrimSpace(req.Owner)
	if req.Value.IsZero() || req.Category == "" || req.Kind == "" || req.Owner == "" {
		writeError(w, r, http.StatusBadRequest, "Campos obrigatórios: valor, categoria, tipo, user_id", "")
		return
	}
	kind := core.Kind(req.Kind)
	if !kind.Valid() {
		writeError(w, r, http.StatusBadRequest, `Tipo deve ser "receita" ou "despesa"`, "")
		return
	}
	if !req.Value.IsPositive() {
		writeError(w, r, http.StatusBadRequest, "Valor deve ser maior que zero", "")
		return
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		desc = fmt.Sprintf("%s - %s", kind, req.Category)
	}

	tx := core.Transaction{
		Value:       req.Value.Round(2),
		Category:    req.Category,
		Kind:        kind,
		Description: desc,
		Owner:       req.Owner,
		OccurredAt:  s.now(),
	}
	if err := tx.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, "Transação inválida", err.Error())
		return
	}

	id, err := s.store.Insert(ctx, tx)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to insert transaction",
			log.FieldOwner, tx.Owner,
			log.FieldOperation, log.OpCreate,
			log.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "Erro ao registrar transação", "")
		return
	}
	tx.ID = id

	writeJSON(w, r, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Transação registrada com sucesso!",
		"data":    toJSON(tx),
	})
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return defaultListLimit
	}
	return min(n, maxListLimit)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := strings.TrimSpace(chi.URLParam(r, "userId"))
	limit := parseLimit(r.URL.Query().Get("limite"))

	txs, err := s.store.SelectRecent(ctx, owner, limit, nil)
	if err != nil {
		if errors.Is(err, core.ErrMissingOwner) {
			writeError(w, r, http.StatusBadRequest, "user_id é obrigatório", "")
			return
		}
		log.FromContext(ctx).ErrorContext(ctx, "Failed to list transactions",
			log.FieldOwner, owner,
			log.FieldOperation, log.OpList,
			log.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "Erro ao buscar transações", "")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"data":    toJSONList(txs),
		"total":   len(txs),
	})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req deleteRequest
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.Owner) == "" {
		writeError(w, r, http.StatusBadRequest, "user_id é obrigatório", "")
		return
	}

	err := s.store.DeleteByID(ctx, strings.TrimSpace(req.Owner), id)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, map[string]any{
			"success": true,
			"message": "Transação deletada com sucesso!",
		})
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "Transação não encontrada", "")
	default:
		log.FromContext(ctx).ErrorContext(ctx, "Failed to delete transaction",
			log.FieldTxID, id,
			log.FieldOperation, log.OpDelete,
			log.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "Erro ao deletar transação", "")
	}
}

// handleQuick runs one message through the interpreter, as the chat would.
func (s *Server) handleQuick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req quickRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "JSON inválido", err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.Owner) == "" {
		writeError(w, r, http.StatusBadRequest, "Campos obrigatórios: texto, user_id", "")
		return
	}

	res, err := s.interp.Interpret(ctx, strings.TrimSpace(req.Owner), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNoMatch), errors.Is(err, core.ErrInvalidAmount):
			writeError(w, r, http.StatusBadRequest, interpreter.UsageReply, "")
		case errors.Is(err, core.ErrNotFound):
			writeError(w, r, http.StatusNotFound, interpreter.NotFoundReply, "")
		default:
			log.FromContext(ctx).ErrorContext(ctx, "Quick entry failed",
				log.FieldOwner, req.Owner,
				log.FieldIntent, res.Intent.Kind.String(),
				log.FieldError, err)
			writeError(w, r, http.StatusInternalServerError, interpreter.StoreErrorReply, "")
		}
		return
	}

	body := map[string]any{
		"success": true,
		"intent":  res.Intent.Kind.String(),
		"reply":   res.Reply,
	}
	if res.Transaction != nil {
		body["data"] = toJSON(*res.Transaction)
	}
	writeJSON(w, r, http.StatusOK, body)
}

type summaryJSON struct {
	Period  string      `json:"periodo"`
	Income  json.Number `json:"receitas"`
	Expense json.Number `json:"despesas"`
	Balance json.Number `json:"saldo"`
	Count   int         `json:"total"`
}

// handleDashboard serves the data behind a signed dashboard link.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.tokens == nil {
		writeError(w, r, http.StatusNotFound, "Dashboard desabilitado", "")
		return
	}
	owner, err := s.tokens.Verify(r.URL.Query().Get("token"))
	if err != nil {
		s.logger.WithComponent(log.ComponentDashboard).DebugContext(ctx, "Dashboard token rejected", log.FieldError, err)
		writeError(w, r, http.StatusUnauthorized, "Token inválido ou expirado", "")
		return
	}

	window := interpreter.WindowDefault
	if raw := r.URL.Query().Get("periodo"); raw != "" {
		if parsed, ok := interpreter.ParseWindow(raw); ok {
			window = parsed
		}
	}
	start, end := window.Range(s.now())
	txs, err := s.store.SelectRecent(ctx, owner, 0, &start)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Failed to load dashboard",
			log.FieldOwner, owner,
			log.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "Erro ao buscar transações", "")
		return
	}
	if end != nil {
		txs = interpreter.Before(txs, *end)
	}

	sum := interpreter.Summarize(window, txs)
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"user_id": owner,
		"summary": summaryJSON{
			Period:  window.Label(),
			Income:  json.Number(core.FormatAmount(sum.Income)),
			Expense: json.Number(core.FormatAmount(sum.Expense)),
			Balance: json.Number(core.FormatAmount(sum.Balance)),
			Count:   sum.Count,
		},
		"data": toJSONList(txs),
	})
}
