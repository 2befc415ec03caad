package regattahandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	regattaservice "github.com/stonecove-rowing/crewbot/app/modules/regatta/application"
	regattadb "github.com/stonecove-rowing/crewbot/app/modules/regatta/infrastructure/repositories"
)

// RegattaHandlers handles HTTP requests for regattas and results.
type RegattaHandlers struct {
	service *regattaservice.RegattaService
	logger  *slog.Logger
}

// NewRegattaHandlers creates a new RegattaHandlers instance.
func NewRegattaHandlers(service *regattaservice.RegattaService, logger *slog.Logger) *RegattaHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegattaHandlers{service: service, logger: logger}
}

// Routes sets up the routes for the regatta module.
func (h *RegattaHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateRegatta)
	r.Get("/", h.ListRegattas)
	r.Get("/{regattaID}", h.GetRegatta)
	r.Post("/{regattaID}/results", h.AddResult)
	r.Get("/{regattaID}/results", h.ListResults)
	return r
}

func (h *RegattaHandlers) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}

func (h *RegattaHandlers) CreateRegatta(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string    `json:"name"`
		Venue     string    `json:"venue"`
		StartDate time.Time `json:"start_date"`
		EndDate   time.Time `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.StartDate.IsZero() {
		http.Error(w, "name and start_date are required", http.StatusBadRequest)
		return
	}
	if req.EndDate.IsZero() {
		req.EndDate = req.StartDate
	}

	regatta, err := h.service.CreateRegatta(r.Context(), regattaservice.CreateRegattaCommand{
		Name:      req.Name,
		Venue:     req.Venue,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create regatta: %v", err), http.StatusBadRequest)
		return
	}
	h.respondJSON(w, http.StatusCreated, regatta)
}

func (h *RegattaHandlers) ListRegattas(w http.ResponseWriter, r *http.Request) {
	regattas, err := h.service.ListRegattas(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list regattas: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, regattas)
}

func (h *RegattaHandlers) GetRegatta(w http.ResponseWriter, r *http.Request) {
	regattaID, err := uuid.Parse(chi.URLParam(r, "regattaID"))
	if err != nil {
		http.Error(w, "invalid regattaID", http.StatusBadRequest)
		return
	}

	regatta, err := h.service.GetRegatta(r.Context(), regattaID)
	if err != nil {
		if errors.Is(err, regattadb.ErrNotFound) {
			http.Error(w, "Regatta not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get regatta: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, regatta)
}

func (h *RegattaHandlers) AddResult(w http.ResponseWriter, r *http.Request) {
	regattaID, err := uuid.Parse(chi.URLParam(r, "regattaID"))
	if err != nil {
		http.Error(w, "invalid regattaID", http.StatusBadRequest)
		return
	}

	var req struct {
		Event     string    `json:"event"`
		LineupID  uuid.UUID `json:"lineup_id"`
		Placement int       `json:"placement"`
		ElapsedMs int64     `json:"elapsed_ms"`
		Notes     string    `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Event == "" || req.LineupID == uuid.Nil {
		http.Error(w, "event and lineup_id are required", http.StatusBadRequest)
		return
	}

	result, err := h.service.AddResult(r.Context(), regattaID, regattaservice.AddResultCommand{
		Event:     req.Event,
		LineupID:  req.LineupID,
		Placement: req.Placement,
		ElapsedMs: req.ElapsedMs,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, regattadb.ErrNotFound) {
			http.Error(w, "Regatta not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to add result: %v", err), http.StatusBadRequest)
		return
	}
	h.respondJSON(w, http.StatusCreated, result)
}

func (h *RegattaHandlers) ListResults(w http.ResponseWriter, r *http.Request) {
	regattaID, err := uuid.Parse(chi.URLParam(r, "regattaID"))
	if err != nil {
		http.Error(w, "invalid regattaID", http.StatusBadRequest)
		return
	}

	results, err := h.service.ListResults(r.Context(), regattaID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list results: %v", err), http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, results)
}
