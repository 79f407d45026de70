package http

import (
	"encoding/xml"
	"net/http"
	"strings"

	"financas/internal/log"
)

const rateLimitedReply = "⏳ Muitas mensagens em pouco tempo. Aguarde um minuto e tente novamente."

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// ownerFromSender strips the channel prefix Twilio adds to phone numbers.
func ownerFromSender(from string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(from), "whatsapp:"))
}

func senderKey(r *http.Request) string {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	return ownerFromSender(r.FormValue("From"))
}

func writeTwiML(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(twimlResponse{Message: msg}); err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Failed to write TwiML", log.FieldError, err)
	}
}

func (s *Server) handleWhatsApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "Formulário inválido", err.Error())
		return
	}
	owner := ownerFromSender(r.PostFormValue("From"))
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "Campo From é obrigatório", "")
		return
	}

	reply := s.interp.Handle(ctx, owner, r.PostFormValue("Body"))
	s.logger.DebugContext(ctx, "Webhook message handled", log.FieldOwner, owner)
	writeTwiML(w, r, http.StatusOK, reply)
}

// handleLimited answers over-limit senders in the chat with a 200.
func (s *Server) handleLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldOwner, ownerFromSender(r.FormValue("From")),
		log.FieldPath, r.URL.Path)
	writeTwiML(w, r, http.StatusOK, rateLimitedReply)
}
