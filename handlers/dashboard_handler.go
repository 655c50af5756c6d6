package handlers

import (
	"net/http"

	"github.com/kenyapadelscore/padelscore/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s}
}

// Stats serves the cached dashboard summary. Upstream failures never
// surface here; the service substitutes a zeroed summary instead.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.dashboardService.Stats()
	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
