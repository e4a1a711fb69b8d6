package handlers

import (
	"net/http"
)

// HealthHandler provides a minimal liveness check endpoint, reporting
// the ephemeris data path the process was configured with.
type HealthHandler struct {
	EphePath string
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{"status": "ok", "ephemeris_path": h.EphePath}
	writeJSON(w, r, http.StatusOK, res)
}
