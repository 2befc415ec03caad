package gauntlethandlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	gauntletservice "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/application"
)

// ProcessMatch records a completed water session and advances the ladder.
func (h *GauntletHandlers) ProcessMatch(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		SideALineupID  uuid.UUID `json:"side_a_lineup_id"`
		SideBLineupID  uuid.UUID `json:"side_b_lineup_id"`
		Sets           int       `json:"sets"`
		SideASetWins   int       `json:"side_a_set_wins"`
		SideASetLosses int       `json:"side_a_set_losses"`
		MatchDate      time.Time `json:"match_date"`
		Notes          string    `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.SideALineupID == uuid.Nil || req.SideBLineupID == uuid.Nil {
		http.Error(w, "both lineup ids are required", http.StatusBadRequest)
		return
	}
	if req.SideALineupID == req.SideBLineupID {
		http.Error(w, "a lineup cannot race itself", http.StatusBadRequest)
		return
	}
	if req.Sets <= 0 {
		http.Error(w, "sets must be positive", http.StatusBadRequest)
		return
	}
	if req.SideASetWins < 0 || req.SideASetLosses < 0 || req.SideASetWins+req.SideASetLosses > req.Sets {
		http.Error(w, "set figures must be non-negative and sum to at most sets", http.StatusBadRequest)
		return
	}
	if req.MatchDate.IsZero() {
		req.MatchDate = time.Now().UTC()
	}

	result, err := h.service.ProcessMatch(r.Context(), gauntletservice.ProcessMatchCommand{
		GauntletID:     gauntletID,
		SideALineupID:  req.SideALineupID,
		SideBLineupID:  req.SideBLineupID,
		Sets:           req.Sets,
		SideASetWins:   req.SideASetWins,
		SideASetLosses: req.SideASetLosses,
		MatchDate:      req.MatchDate,
		Notes:          req.Notes,
	})
	if err != nil {
		if notFound(err) {
			http.Error(w, "Gauntlet not found", http.StatusNotFound)
			return
		}
		if conflict(err) {
			http.Error(w, fmt.Sprintf("Failed to process match: %v", err), http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to process match: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusCreated, result)
}

// GetMatch retrieves one recorded match.
func (h *GauntletHandlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := pathUUID(r, "matchID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	match, err := h.service.GetMatch(r.Context(), matchID)
	if err != nil {
		if notFound(err) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get match: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, match)
}

// ListMatches retrieves a gauntlet's matches, most recent first.
func (h *GauntletHandlers) ListMatches(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	matches, err := h.service.ListMatches(r.Context(), gauntletID, queryLimit(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list matches: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, matches)
}

// ListLineupMatches retrieves the matches one lineup took part in.
func (h *GauntletHandlers) ListLineupMatches(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lineupID, err := pathUUID(r, "lineupID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	matches, err := h.service.ListLineupMatches(r.Context(), gauntletID, lineupID, queryLimit(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list matches: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, matches)
}
