package api

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// GET /reading/one
func (h *Handler) drawOne(w http.ResponseWriter, r *http.Request) {
	card, err := h.Deck.Draw()
	if err != nil {
		h.Log.WithError(err).
			WithField("request_id", middleware.GetReqID(r.Context())).
			Error("draw failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, r, http.StatusOK, card)
}
