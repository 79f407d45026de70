package http

import (
	"encoding/json"
	"net/http"
	"time"

	"financas/internal/core"
	"financas/internal/log"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// transactionJSON mirrors the columns of the transacoes table.
type transactionJSON struct {
	ID          string      `json:"id"`
	Value       json.Number `json:"valor"`
	Category    string      `json:"categoria"`
	Kind        string      `json:"tipo"`
	Description string      `json:"descricao"`
	Owner       string      `json:"user_id"`
	OccurredAt  string      `json:"data"`
}

func toJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		Value:       json.Number(core.FormatAmount(t.Value)),
		Category:    t.Category,
		Kind:        string(t.Kind),
		Description: t.Description,
		Owner:       t.Owner,
		OccurredAt:  t.OccurredAt.UTC().Format(time.RFC3339),
	}
}

func toJSONList(txs []core.Transaction) []transactionJSON {
	out := make([]transactionJSON, 0, len(txs))
	for _, t := range txs {
		out = append(out, toJSON(t))
	}
	return out
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Failed to write response", log.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg, details string) {
	writeJSON(w, r, status, errorResponse{Error: msg, Details: details})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
