package lineuphandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	lineupservice "github.com/stonecove-rowing/crewbot/app/modules/lineup/application"
	lineupdb "github.com/stonecove-rowing/crewbot/app/modules/lineup/infrastructure/repositories"
	rosterdb "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/repositories"
)

// LineupHandlers handles HTTP requests for lineups.
type LineupHandlers struct {
	service *lineupservice.LineupService
	logger  *slog.Logger
}

// NewLineupHandlers creates a new LineupHandlers instance.
func NewLineupHandlers(service *lineupservice.LineupService, logger *slog.Logger) *LineupHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &LineupHandlers{service: service, logger: logger}
}

// Routes sets up the routes for the lineup module.
func (h *LineupHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateLineup)
	r.Get("/", h.ListLineups)
	r.Get("/{lineupID}", h.GetLineup)
	r.Put("/{lineupID}/seats", h.ReseatLineup)
	r.Delete("/{lineupID}", h.DeleteLineup)
	return r
}

type seatRequest struct {
	AthleteID uuid.UUID `json:"athlete_id"`
	Seat      int       `json:"seat"`
}

func toAssignments(seats []seatRequest) []lineupservice.SeatAssignment {
	out := make([]lineupservice.SeatAssignment, len(seats))
	for i, s := range seats {
		out[i] = lineupservice.SeatAssignment{AthleteID: s.AthleteID, Seat: s.Seat}
	}
	return out
}

func (h *LineupHandlers) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}

func (h *LineupHandlers) CreateLineup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string        `json:"name"`
		BoatID uuid.UUID     `json:"boat_id"`
		Seats  []seatRequest `json:"seats"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.BoatID == uuid.Nil {
		http.Error(w, "name and boat_id are required", http.StatusBadRequest)
		return
	}

	lineup, err := h.service.CreateLineup(r.Context(), lineupservice.CreateLineupCommand{
		Name:   req.Name,
		BoatID: req.BoatID,
		Seats:  toAssignments(req.Seats),
	})
	if err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			http.Error(w, "Boat not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to create lineup: %v", err), http.StatusBadRequest)
		return
	}
	h.respondJSON(w, http.StatusCreated, lineup)
}

func (h *LineupHandlers) ListLineups(w http.ResponseWriter, r *http.Request) {
	lineups, err := h.service.ListLineups(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list lineups: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, lineups)
}

func (h *LineupHandlers) GetLineup(w http.ResponseWriter, r *http.Request) {
	lineupID, err := uuid.Parse(chi.URLParam(r, "lineupID"))
	if err != nil {
		http.Error(w, "invalid lineupID", http.StatusBadRequest)
		return
	}

	lineup, err := h.service.GetLineup(r.Context(), lineupID)
	if err != nil {
		if errors.Is(err, lineupdb.ErrNotFound) {
			http.Error(w, "Lineup not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get lineup: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, lineup)
}

func (h *LineupHandlers) ReseatLineup(w http.ResponseWriter, r *http.Request) {
	lineupID, err := uuid.Parse(chi.URLParam(r, "lineupID"))
	if err != nil {
		http.Error(w, "invalid lineupID", http.StatusBadRequest)
		return
	}

	var req struct {
		Seats []seatRequest `json:"seats"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	lineup, err := h.service.ReseatLineup(r.Context(), lineupID, toAssignments(req.Seats))
	if err != nil {
		if errors.Is(err, lineupdb.ErrNotFound) {
			http.Error(w, "Lineup not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to reseat lineup: %v", err), http.StatusBadRequest)
		return
	}
	h.respondJSON(w, http.StatusOK, lineup)
}

func (h *LineupHandlers) DeleteLineup(w http.ResponseWriter, r *http.Request) {
	lineupID, err := uuid.Parse(chi.URLParam(r, "lineupID"))
	if err != nil {
		http.Error(w, "invalid lineupID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteLineup(r.Context(), lineupID); err != nil {
		if errors.Is(err, lineupdb.ErrNotFound) {
			http.Error(w, "Lineup not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to delete lineup: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
