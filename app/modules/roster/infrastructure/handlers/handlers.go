package rosterhandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	rosterservice "github.com/stonecove-rowing/crewbot/app/modules/roster/application"
	rosterdb "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/repositories"
)

// RosterHandlers handles HTTP requests for athletes and boats.
type RosterHandlers struct {
	service   *rosterservice.RosterService
	logger    *slog.Logger
	coachOnly func(http.Handler) http.Handler
}

// NewRosterHandlers creates a new RosterHandlers instance. coachOnly
// gates every write; nil leaves them open.
func NewRosterHandlers(service *rosterservice.RosterService, logger *slog.Logger, coachOnly func(http.Handler) http.Handler) *RosterHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	if coachOnly == nil {
		coachOnly = func(next http.Handler) http.Handler { return next }
	}
	return &RosterHandlers{service: service, logger: logger, coachOnly: coachOnly}
}

// Routes sets up the routes for the roster module.
func (h *RosterHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/athletes", func(r chi.Router) {
		r.With(h.coachOnly).Post("/", h.CreateAthlete)
		r.Get("/", h.ListAthletes)
		r.Get("/{athleteID}", h.GetAthlete)
		r.With(h.coachOnly).Put("/{athleteID}", h.UpdateAthlete)
		r.With(h.coachOnly).Put("/{athleteID}/pin", h.SetPIN)
		r.With(h.coachOnly).Delete("/{athleteID}", h.DeactivateAthlete)
	})
	r.Route("/boats", func(r chi.Router) {
		r.With(h.coachOnly).Post("/", h.CreateBoat)
		r.Get("/", h.ListBoats)
		r.Get("/{boatID}", h.GetBoat)
		r.With(h.coachOnly).Delete("/{boatID}", h.DeleteBoat)
	})
	return r
}

func (h *RosterHandlers) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}

func (h *RosterHandlers) CreateAthlete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string        `json:"name"`
		Side rosterdb.Side `json:"side"`
		Role string        `json:"role"`
		PIN  string        `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	athlete, err := h.service.CreateAthlete(r.Context(), rosterservice.CreateAthleteCommand{
		Name: req.Name,
		Side: req.Side,
		Role: req.Role,
		PIN:  req.PIN,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create athlete: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusCreated, athlete)
}

func (h *RosterHandlers) ListAthletes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	athletes, err := h.service.ListAthletes(r.Context(), activeOnly)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list athletes: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, athletes)
}

func (h *RosterHandlers) GetAthlete(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(chi.URLParam(r, "athleteID"))
	if err != nil {
		http.Error(w, "invalid athleteID", http.StatusBadRequest)
		return
	}

	athlete, err := h.service.GetAthlete(r.Context(), athleteID)
	if err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			http.Error(w, "Athlete not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get athlete: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, athlete)
}

func (h *RosterHandlers) UpdateAthlete(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(chi.URLParam(r, "athleteID"))
	if err != nil {
		http.Error(w, "invalid athleteID", http.StatusBadRequest)
		return
	}

	var req struct {
		Name string        `json:"name"`
		Side rosterdb.Side `json:"side"`
		Role string        `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	athlete, err := h.service.UpdateAthlete(r.Context(), athleteID, rosterservice.UpdateAthleteCommand{
		Name: req.Name,
		Side: req.Side,
		Role: req.Role,
	})
	if err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			http.Error(w, "Athlete not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to update athlete: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, athlete)
}

func (h *RosterHandlers) SetPIN(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(chi.URLParam(r, "athleteID"))
	if err != nil {
		http.Error(w, "invalid athleteID", http.StatusBadRequest)
		return
	}

	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SetPIN(r.Context(), athleteID, req.PIN); err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			http.Error(w, "Athlete not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to set PIN: %v", err), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RosterHandlers) DeactivateAthlete(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(chi.URLParam(r, "athleteID"))
	if err != nil {
		http.Error(w, "invalid athleteID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeactivateAthlete(r.Context(), athleteID); err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			http.Error(w, "Athlete not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to deactivate athlete: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RosterHandlers) CreateBoat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Class string `json:"class"`
		Seats int    `json:"seats"`
		Coxed bool   `json:"coxed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Class == "" {
		http.Error(w, "name and class are required", http.StatusBadRequest)
		return
	}

	boat, err := h.service.CreateBoat(r.Context(), rosterservice.CreateBoatCommand{
		Name:  req.Name,
		Class: req.Class,
		Seats: req.Seats,
		Coxed: req.Coxed,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create boat: %v", err), http.StatusBadRequest)
		return
	}
	h.respondJSON(w, http.StatusCreated, boat)
}

func (h *RosterHandlers) ListBoats(w http.ResponseWriter, r *http.Request) {
	boats, err := h.service.ListBoats(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list boats: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, boats)
}

func (h *RosterHandlers) GetBoat(w http.ResponseWriter, r *http.Request) {
	boatID, err := uuid.Parse(chi.URLParam(r, "boatID"))
	if err != nil {
		http.Error(w, "invalid boatID", http.StatusBadRequest)
		return
	}

	boat, err := h.service.GetBoat(r.Context(), boatID)
	if err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			http.Error(w, "Boat not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get boat: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, boat)
}

func (h *RosterHandlers) DeleteBoat(w http.ResponseWriter, r *http.Request) {
	boatID, err := uuid.Parse(chi.URLParam(r, "boatID"))
	if err != nil {
		http.Error(w, "invalid boatID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteBoat(r.Context(), boatID); err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			http.Error(w, "Boat not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to delete boat: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
