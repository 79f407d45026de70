package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Output: &buf, Component: ComponentHTTP})

	l.Info("hello", FieldOwner, "ana")
	l.WithComponent(ComponentWorker).Warn("careful")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "component=http")
	assert.Contains(t, out, "owner=ana")
	assert.Contains(t, out, "component=worker")
	assert.NotContains(t, out, "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().
		WithOperation(OpCreate).
		WithTransaction("id-1", "ana", "despesa", "mercado", "40.00").
		WithError(errors.New("broker down")).
		WithError(nil)

	assert.Equal(t, "create", f[FieldOperation])
	assert.Equal(t, "broker down", f[FieldError])
	assert.Equal(t, "40.00", f[FieldAmount])
	assert.Len(t, f.ToSlice(), len(f)*2)
}

func TestMiddlewareAttachesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: slog.LevelInfo, Output: &buf, Component: ComponentHTTP})

	h := Middleware(base, func(*http.Request) string { return "req_1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			FromContext(r.Context()).InfoContext(r.Context(), "inside")
		}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), "request_id=req_1")
	assert.Equal(t, "unknown", FromContext(context.Background()).Component())
}
