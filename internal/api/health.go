package api

import (
	"net/http"
	"path/filepath"
)

// HealthHandler reports that the server is up.
type HealthHandler struct {
	DBPath string
}

// Check handles GET /.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	path := h.DBPath
	if abs, err := filepath.Abs(path); err == nil && path != "" {
		path = abs
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "online", "db": path})
}
