package handler

import (
	"net/http"

	"notetaker/internal/httputil"
)

// Health reports service liveness
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
