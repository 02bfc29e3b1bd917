package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggingMiddlewareLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggingMiddleware(zerolog.New(&buf))

	var ctxLogger *zerolog.Logger
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = zerolog.Ctx(r.Context())
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	req := httptest.NewRequest(http.MethodPost, "/clientes/1/transacoes", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one json log line, got %q: %v", buf.String(), err)
	}

	if entry["method"] != http.MethodPost || entry["path"] != "/clientes/1/transacoes" || entry["status"] != float64(422) {
		t.Fatalf("unexpected log entry: %v", entry)
	}

	if entry["level"] != "warn" {
		t.Fatalf("expected client error to log at warn, got %v", entry["level"])
	}

	if ctxLogger == nil || ctxLogger.GetLevel() == zerolog.Disabled {
		t.Fatalf("expected request logger in context")
	}
}

func TestLoggingMiddlewareProbesLogAtDebug(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggingMiddleware(zerolog.New(&buf).Level(zerolog.InfoLevel))

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if buf.Len() != 0 {
		t.Fatalf("expected health probe to be filtered at info level, got %q", buf.String())
	}

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clientes/1/extrato", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one json log line, got %q: %v", buf.String(), err)
	}
	if entry["bytes"] != float64(2) || entry["level"] != "info" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestRecoveryReturns500(t *testing.T) {
	var buf bytes.Buffer

	handler := Recovery(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	if !bytes.Contains(buf.Bytes(), []byte("panic recovered")) {
		t.Fatalf("expected panic to be logged, got %q", buf.String())
	}
}
