package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/myit/inventory/internal/dashboard"
	"github.com/myit/inventory/internal/store"
)

// DashboardHandler serves the summary figures.
type DashboardHandler struct {
	DB  *sql.DB
	Now func() time.Time
}

// Stats handles GET /api/dashboard.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	assets, err := store.ListAssets(r.Context(), h.DB)
	if err != nil {
		internalError(w, r, "failed to load assets for dashboard", err)
		return
	}
	jsonResponse(w, http.StatusOK, dashboard.Compute(assets, h.Now()))
}
