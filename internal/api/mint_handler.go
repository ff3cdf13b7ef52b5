package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/lzjever/mbos-tuid/internal/core"
	"github.com/lzjever/mbos-tuid/pkg/tuid"
)

type MintRequest struct {
	Count int `json:"count"`
}

// MintedID is the wire view of one ID. U64 is a string because the integer
// form exceeds the precision JSON consumers can rely on.
type MintedID struct {
	ID   string `json:"id"`
	U64  string `json:"u64"`
	Time string `json:"time"`
}

type MintResponse struct {
	IDs       []MintedID `json:"ids"`
	MachineID uint8      `json:"machine_id"`
	Mode      string     `json:"mode"`
}

// MintIDs mints a batch of IDs. An empty body mints one.
func (a *API) MintIDs(w http.ResponseWriter, r *http.Request) {
	req := MintRequest{Count: 1}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "invalid request body"))
		return
	}
	if req.Count < 1 {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "count must be at least 1"))
		return
	}
	if req.Count > a.maxBatch {
		WriteError(w, core.NewAppError(core.ErrBadRequest,
			fmt.Sprintf("count exceeds maximum batch size %d", a.maxBatch)))
		return
	}

	ids, err := a.minter.Mint(req.Count)
	if err != nil {
		WriteError(w, core.FromTuidError(err))
		return
	}

	resp := MintResponse{
		IDs:       make([]MintedID, 0, len(ids)),
		MachineID: a.minter.MachineID(),
		Mode:      string(a.minter.Mode()),
	}
	for _, id := range ids {
		resp.IDs = append(resp.IDs, mintedView(id))
	}
	WriteJSON(w, http.StatusOK, resp)
}

func mintedView(id tuid.ID) MintedID {
	return MintedID{
		ID:   id.String(),
		U64:  strconv.FormatUint(id.Uint64(), 10),
		Time: id.Time().Format(time.RFC3339Nano),
	}
}
