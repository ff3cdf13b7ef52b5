package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lzjever/mbos-tuid/internal/core"
	"github.com/lzjever/mbos-tuid/pkg/tuid"
)

type InspectResponse struct {
	ID            string `json:"id"`
	U64           string `json:"u64"`
	Time          string `json:"time"`
	Disambiguator uint8  `json:"disambiguator"`
	Extra         uint16 `json:"extra"`
}

// InspectID decodes the fields embedded in a hex-encoded ID. The embedded
// time carries the format's lossy millisecond precision, not the exact
// minting instant.
func (a *API) InspectID(w http.ResponseWriter, r *http.Request) {
	id, err := tuid.ParseString(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, core.FromTuidError(err))
		return
	}

	WriteJSON(w, http.StatusOK, InspectResponse{
		ID:            id.String(),
		U64:           strconv.FormatUint(id.Uint64(), 10),
		Time:          id.Time().Format(time.RFC3339Nano),
		Disambiguator: id.Disambiguator(),
		Extra:         id.Extra(),
	})
}
