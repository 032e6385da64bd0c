package httpapi

import (
	"net/http"

	"storefront-be/internal/apilog"
)

type techRequest struct {
	Tech apilog.Tech `json:"tech" validate:"required"`
}

type logsResponse struct {
	Tech    apilog.Tech    `json:"tech"`
	Entries []apilog.Entry `json:"entries"`
}

func (h *Handler) AdminLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, logsResponse{Tech: h.apiLog.Tech(), Entries: h.apiLog.Entries()})
}

func (h *Handler) AdminSetTech(w http.ResponseWriter, r *http.Request) {
	var req techRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if err := h.apiLog.SetTech(req.Tech); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, logsResponse{Tech: h.apiLog.Tech(), Entries: h.apiLog.Entries()})
}
