package handlers

import (
	"net/http"

	"github.com/kenyapadelscore/padelscore/middleware"
	"github.com/kenyapadelscore/padelscore/models"
	"github.com/kenyapadelscore/padelscore/services"
)

type MatchHandler struct {
	matchService services.MatchService
	scoreGate    *services.ScoreGate
}

func NewMatchHandler(matchService services.MatchService, scoreGate *services.ScoreGate) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		scoreGate:    scoreGate,
	}
}

// ListMatchesHandler handles GET /api/matches?status=&tournament_id=.
func (h *MatchHandler) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	filter := models.MatchFilter{}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := models.MatchStatus(statusStr)
		if !models.ValidMatchStatus(status) {
			mapServiceErrorToHTTP(w, r, services.ErrMatchInvalidStatus)
			return
		}
		filter.Status = &status
	}
	if tournamentIDStr := r.URL.Query().Get("tournament_id"); tournamentIDStr != "" {
		tournamentID, err := parsePositiveInt(tournamentIDStr, "tournament_id")
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		filter.TournamentID = &tournamentID
	}

	matches, err := h.matchService.ListMatches(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches, "total": len(matches)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMatchHandler handles GET /api/matches/{matchID}.
func (h *MatchHandler) GetMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMatchHandler handles POST /api/matches. Admin only (enforced by
// route middleware).
func (h *MatchHandler) CreateMatchHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateScoreHandler handles PUT /api/matches/{matchID}/score. The score
// gate authorizes the principal and fans the accepted update out.
func (h *MatchHandler) UpdateScoreHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.ScoreUpdateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.scoreGate.SubmitScore(r.Context(), principal, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateMatchHandler handles PUT /api/matches/{matchID}. Admin only.
func (h *MatchHandler) UpdateMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input services.DetailsUpdateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.scoreGate.UpdateDetails(r.Context(), principal, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
