package api

import (
	"net/http"
	"time"

	"github.com/lzjever/mbos-tuid/pkg/tuid"
)

// HealthHandler returns 200 if service is healthy.
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// ReadyHandler returns 200 if service is ready to mint. The only runtime
// dependency is the clock: a host whose time regressed past the reference
// epoch cannot mint valid IDs.
func (a *API) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if time.Now().UnixMilli() < tuid.Epoch {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "clock behind epoch"})
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
