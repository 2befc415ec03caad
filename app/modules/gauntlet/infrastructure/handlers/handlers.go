package gauntlethandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	gauntletservice "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/application"
	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

// GauntletHandlers handles HTTP requests for gauntlets.
type GauntletHandlers struct {
	service   gauntletservice.Service
	logger    *slog.Logger
	coachOnly func(http.Handler) http.Handler
}

// NewGauntletHandlers creates a new GauntletHandlers instance. coachOnly
// gates ladder administration (create, status, seed, rank adjustment);
// nil leaves those routes open.
func NewGauntletHandlers(service gauntletservice.Service, logger *slog.Logger, coachOnly func(http.Handler) http.Handler) *GauntletHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	if coachOnly == nil {
		coachOnly = func(next http.Handler) http.Handler { return next }
	}
	return &GauntletHandlers{service: service, logger: logger, coachOnly: coachOnly}
}

// Routes sets up the routes for the gauntlet module.
func (h *GauntletHandlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(h.coachOnly).Post("/", h.CreateGauntlet)
	r.Get("/", h.ListGauntlets)
	r.Get("/matches/{matchID}", h.GetMatch)
	r.Route("/{gauntletID}", func(r chi.Router) {
		r.Get("/", h.GetGauntlet)
		r.With(h.coachOnly).Post("/status", h.TransitionGauntlet)
		r.With(h.coachOnly).Post("/seed", h.SeedGauntlet)
		r.Post("/matches", h.ProcessMatch)
		r.Get("/matches", h.ListMatches)
		r.Get("/standings", h.GetStandings)
		r.Get("/standings/export", h.ExportStandings)
		r.Get("/progressions", h.GetProgressionHistory)
		r.Route("/lineups/{lineupID}", func(r chi.Router) {
			r.Get("/position", h.GetLineupPosition)
			r.Get("/matches", h.ListLineupMatches)
			r.Get("/progressions", h.GetLineupProgression)
			r.Get("/progressions/chart", h.GetLineupProgressionChart)
			r.With(h.coachOnly).Post("/rank", h.AdjustRank)
		})
	})
	return r
}

func (h *GauntletHandlers) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func queryLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

func notFound(err error) bool {
	return errors.Is(err, gauntletdb.ErrNotFound) || errors.Is(err, gauntletdb.ErrPositionNotFound)
}

// conflict reports whether err is a ladder-state rejection rather than
// an infrastructure failure.
func conflict(err error) bool {
	return errors.Is(err, gauntletservice.ErrNotAcceptingMatches) ||
		errors.Is(err, gauntletservice.ErrInvalidTransition) ||
		errors.Is(err, gauntletservice.ErrNotInSetup) ||
		errors.Is(err, gauntletservice.ErrAlreadySeeded) ||
		errors.Is(err, gauntletdb.ErrDuplicatePosition)
}
