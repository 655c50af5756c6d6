package handlers

import (
	"net/http"
	"time"
)

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"status":    "ok",
		"message":   "PADELSCORE backend is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
