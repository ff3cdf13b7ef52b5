package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	req := httptest.NewRequest("POST", "/v1/ids", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if seen == "" {
		t.Fatal("no request id injected")
	}
	if got := w.Header().Get("X-Tuid-Request-Id"); got != seen {
		t.Errorf("response header %q does not match context id %q", got, seen)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	req := httptest.NewRequest("POST", "/v1/ids", nil)
	req.Header.Set(RequestIDHeader, "caller-supplied")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if seen != "caller-supplied" {
		t.Errorf("expected caller-supplied request id, got %q", seen)
	}
}

func TestLoggerIncludesRouteAndRequestID(t *testing.T) {
	zcore, logs := observer.New(zapcore.InfoLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(zcore))
	defer zap.ReplaceGlobals(prev)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Get("/v1/ids/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/v1/ids/000000013b070001", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["route"] != "/v1/ids/{id}" {
		t.Errorf("expected route /v1/ids/{id}, got %v", fields["route"])
	}
	if fields["request_id"] == "" {
		t.Error("expected a request_id field")
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Errorf("expected status 200, got %v", fields["status"])
	}
}

func TestRecovererReturnsInternalError(t *testing.T) {
	h := Recoverer(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("GET", "/v1/ids/deadbeefdeadbeef", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp["code"] != "TUID_INTERNAL" {
		t.Errorf("expected code TUID_INTERNAL, got %s", resp["code"])
	}
}
