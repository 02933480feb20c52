package api

import (
	"net/http"

	"github.com/vr33ni-dev/mystic-cards-api/diag"
)

// GET /test
// Always 200 so operators can poll it without tripping alerts when the
// database is missing.
func (h *Handler) diagnostics(w http.ResponseWriter, r *http.Request) {
	p := h.Prober
	if p == nil {
		p = diag.NewProber(diag.Absent(), diag.WithLogger(h.Log))
	}
	h.writeJSON(w, r, http.StatusOK, p.Probe(r.Context()))
}
