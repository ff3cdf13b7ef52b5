package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lzjever/mbos-tuid/internal/core"
	"github.com/lzjever/mbos-tuid/internal/minter"
)

func newTestAPI(t *testing.T, mode minter.Mode) *API {
	t.Helper()
	m, err := minter.New(mode, 42, zap.NewNop())
	if err != nil {
		t.Fatalf("minter.New: %v", err)
	}
	return NewAPI(m, 100, zap.NewNop())
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	api := newTestAPI(t, minter.ModeSequence)
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	api.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("expected body OK, got %s", w.Body.String())
	}
}

func TestMintBatch(t *testing.T) {
	api := newTestAPI(t, minter.ModeSequence)
	w := postJSON(t, api.Router(), "/v1/ids", `{"count":5}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp MintResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if len(resp.IDs) != 5 {
		t.Fatalf("expected 5 ids, got %d", len(resp.IDs))
	}
	if resp.MachineID != 42 {
		t.Errorf("expected machine_id 42, got %d", resp.MachineID)
	}
	if resp.Mode != "sequence" {
		t.Errorf("expected mode sequence, got %s", resp.Mode)
	}
	for _, id := range resp.IDs {
		if len(id.ID) != 16 {
			t.Errorf("expected 16-char hex id, got %q", id.ID)
		}
	}
}

func TestMintDefaultCount(t *testing.T) {
	api := newTestAPI(t, minter.ModeRandom)
	w := postJSON(t, api.Router(), "/v1/ids", `{}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp MintResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if len(resp.IDs) != 1 {
		t.Fatalf("expected 1 id, got %d", len(resp.IDs))
	}
	if resp.Mode != "random" {
		t.Errorf("expected mode random, got %s", resp.Mode)
	}
}

func TestMintCountValidation(t *testing.T) {
	api := newTestAPI(t, minter.ModeSequence)

	for _, body := range []string{`{"count":0}`, `{"count":-3}`, `{"count":101}`} {
		w := postJSON(t, api.Router(), "/v1/ids", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected status 400, got %d", body, w.Code)
			continue
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %s", err)
		}
		if resp.Code != string(core.ErrBadRequest) {
			t.Errorf("body %s: expected code %s, got %s", body, core.ErrBadRequest, resp.Code)
		}
	}
}

func TestInspectID(t *testing.T) {
	api := newTestAPI(t, minter.ModeSequence)
	req := httptest.NewRequest("GET", "/v1/ids/000000013b070001", nil)
	w := httptest.NewRecorder()

	api.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp InspectResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp.U64 != "5285281793" {
		t.Errorf("expected u64 5285281793, got %s", resp.U64)
	}
	if resp.Disambiguator != 7 {
		t.Errorf("expected disambiguator 7, got %d", resp.Disambiguator)
	}
	if resp.Extra != 1 {
		t.Errorf("expected extra 1, got %d", resp.Extra)
	}
}

func TestInspectMalformedID(t *testing.T) {
	api := newTestAPI(t, minter.ModeSequence)
	req := httptest.NewRequest("GET", "/v1/ids/not-a-tuid", nil)
	w := httptest.NewRecorder()

	api.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp.Code != string(core.ErrBadID) {
		t.Errorf("expected code %s, got %s", core.ErrBadID, resp.Code)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, core.NewAppError(core.ErrCapacityExceeded, "test error"))

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp.Code != "TUID_CAPACITY_EXCEEDED" {
		t.Errorf("expected code TUID_CAPACITY_EXCEEDED, got %s", resp.Code)
	}
}
