package gauntlethandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	gauntletservice "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/application"
	gauntletdomain "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/domain"
)

// CreateGauntlet creates a new competition in setup status.
func (h *GauntletHandlers) CreateGauntlet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string    `json:"name"`
		BoatClass    string    `json:"boat_class"`
		HomeLineupID uuid.UUID `json:"home_lineup_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.BoatClass == "" || req.HomeLineupID == uuid.Nil {
		http.Error(w, "name, boat_class and home_lineup_id are required", http.StatusBadRequest)
		return
	}

	gauntlet, err := h.service.CreateGauntlet(r.Context(), gauntletservice.CreateGauntletCommand{
		Name:         req.Name,
		BoatClass:    req.BoatClass,
		HomeLineupID: req.HomeLineupID,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create gauntlet: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusCreated, gauntlet)
}

// ListGauntlets retrieves all competitions.
func (h *GauntletHandlers) ListGauntlets(w http.ResponseWriter, r *http.Request) {
	gauntlets, err := h.service.ListGauntlets(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list gauntlets: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, gauntlets)
}

// GetGauntlet retrieves one competition.
func (h *GauntletHandlers) GetGauntlet(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	gauntlet, err := h.service.GetGauntlet(r.Context(), gauntletID)
	if err != nil {
		if notFound(err) {
			http.Error(w, "Gauntlet not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get gauntlet: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, gauntlet)
}

// TransitionGauntlet moves a competition to a new lifecycle status.
func (h *GauntletHandlers) TransitionGauntlet(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		Status gauntletdomain.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	gauntlet, err := h.service.TransitionGauntlet(r.Context(), gauntletID, req.Status)
	if err != nil {
		if notFound(err) {
			http.Error(w, "Gauntlet not found", http.StatusNotFound)
			return
		}
		if conflict(err) {
			http.Error(w, fmt.Sprintf("Failed to transition gauntlet: %v", err), http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to transition gauntlet: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, gauntlet)
}

// SeedGauntlet installs the initial ladder order.
func (h *GauntletHandlers) SeedGauntlet(w http.ResponseWriter, r *http.Request) {
	gauntletID, err := pathUUID(r, "gauntletID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		HomeLineupID uuid.UUID   `json:"home_lineup_id"`
		Challengers  []uuid.UUID `json:"challengers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.HomeLineupID == uuid.Nil || len(req.Challengers) == 0 {
		http.Error(w, "home_lineup_id and challengers are required", http.StatusBadRequest)
		return
	}

	positions, err := h.service.SeedGauntlet(r.Context(), gauntletID, req.HomeLineupID, req.Challengers)
	if err != nil {
		if notFound(err) {
			http.Error(w, "Gauntlet not found", http.StatusNotFound)
			return
		}
		if conflict(err) {
			http.Error(w, fmt.Sprintf("Failed to seed gauntlet: %v", err), http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to seed gauntlet: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusCreated, positions)
}

// AdjustRank manually moves a lineup to a new rank.
func (h *GauntletHandlers) AdjustRank(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Rank int `json:"rank"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	position, err := h.service.AdjustRank(r.Context(), gauntletID, lineupID, req.Rank)
	if err != nil {
		if notFound(err) {
			http.Error(w, "Position not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, gauntletservice.ErrRankOutOfRange) {
			http.Error(w, fmt.Sprintf("Failed to adjust rank: %v", err), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to adjust rank: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, position)
}
