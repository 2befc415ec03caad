package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	attendanceservice "github.com/stonecove-rowing/crewbot/app/modules/attendance/application"
	attendancehandlers "github.com/stonecove-rowing/crewbot/app/modules/attendance/infrastructure/handlers"
	attendancedb "github.com/stonecove-rowing/crewbot/app/modules/attendance/infrastructure/repositories"
	authservice "github.com/stonecove-rowing/crewbot/app/modules/auth/application"
	authhandlers "github.com/stonecove-rowing/crewbot/app/modules/auth/infrastructure/handlers"
	gauntletservice "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/application"
	gauntlethandlers "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/handlers"
	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
	lineupservice "github.com/stonecove-rowing/crewbot/app/modules/lineup/application"
	lineuphandlers "github.com/stonecove-rowing/crewbot/app/modules/lineup/infrastructure/handlers"
	lineupdb "github.com/stonecove-rowing/crewbot/app/modules/lineup/infrastructure/repositories"
	regattaservice "github.com/stonecove-rowing/crewbot/app/modules/regatta/application"
	regattahandlers "github.com/stonecove-rowing/crewbot/app/modules/regatta/infrastructure/handlers"
	regattadb "github.com/stonecove-rowing/crewbot/app/modules/regatta/infrastructure/repositories"
	rosterservice "github.com/stonecove-rowing/crewbot/app/modules/roster/application"
	rosterhandlers "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/handlers"
	rosterdb "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/repositories"
	"github.com/stonecove-rowing/crewbot/config"
	"github.com/stonecove-rowing/crewbot/db/bundb"
	"github.com/stonecove-rowing/crewbot/pkg/eventbus"
	"github.com/stonecove-rowing/crewbot/pkg/jwt"
)

// App wires the database, event bus, and every module together.
type App struct {
	Cfg    *config.Config
	db     *bundb.DBService
	logger *slog.Logger
	bus    eventbus.EventBus

	Registry *prometheus.Registry

	GauntletService   *gauntletservice.GauntletService
	RosterService     *rosterservice.RosterService
	LineupService     *lineupservice.LineupService
	AttendanceService *attendanceservice.AttendanceService
	RegattaService    *regattaservice.RegattaService
	AuthService       *authservice.AuthService

	router chi.Router
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}
	db := dbService.GetDB()

	loc, err := time.LoadLocation(cfg.Club.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid club timezone %q: %w", cfg.Club.Timezone, err)
	}

	bus := eventbus.NewGoChannelBus(logger)
	tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL)
	registry := prometheus.NewRegistry()

	athleteRepo := rosterdb.NewAthleteRepo()
	boatRepo := rosterdb.NewBoatRepo()

	gauntletSvc := gauntletservice.NewGauntletService(
		db,
		gauntletdb.NewGauntletRepo(),
		gauntletdb.NewPositionRepo(),
		gauntletdb.NewMatchRepo(),
		gauntletdb.NewProgressionRepo(),
		bus,
		logger,
		gauntletservice.NewMetrics(registry),
		otel.Tracer("gauntlet"),
	)
	rosterSvc := rosterservice.NewRosterService(db, athleteRepo, boatRepo, logger)
	lineupSvc := lineupservice.NewLineupService(db, lineupdb.NewLineupRepo(), boatRepo, logger)
	attendanceSvc := attendanceservice.NewAttendanceService(db, attendancedb.NewAttendanceRepo(), attendanceservice.NewClock(), loc, logger)
	regattaSvc := regattaservice.NewRegattaService(db, regattadb.NewRegattaRepo(), logger)
	authSvc := authservice.NewAuthService(db, athleteRepo, tokens, cfg.JWT.DefaultTTL, logger)

	a := &App{
		Cfg:               cfg,
		db:                dbService,
		logger:            logger,
		bus:               bus,
		Registry:          registry,
		GauntletService:   gauntletSvc,
		RosterService:     rosterSvc,
		LineupService:     lineupSvc,
		AttendanceService: attendanceSvc,
		RegattaService:    regattaSvc,
		AuthService:       authSvc,
	}
	a.router = a.buildRouter(tokens)

	return a, nil
}

// buildRouter mounts every module under /api behind bearer auth. Login
// and health stay open. Ladder administration and roster writes carry a
// RequireRole(coach) gate on top; match submission stays open to any
// authenticated athlete.
func (a *App) buildRouter(tokens jwt.Service) chi.Router {
	coachOnly := authhandlers.RequireRole(jwt.RoleCoach)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	r.Mount("/auth", authhandlers.NewAuthHandlers(a.AuthService, a.logger).Routes())

	r.Route("/api", func(api chi.Router) {
		api.Use(authhandlers.RequireAuth(tokens))
		api.Mount("/gauntlets", gauntlethandlers.NewGauntletHandlers(a.GauntletService, a.logger, coachOnly).Routes())
		api.Mount("/roster", rosterhandlers.NewRosterHandlers(a.RosterService, a.logger, coachOnly).Routes())
		api.Mount("/lineups", lineuphandlers.NewLineupHandlers(a.LineupService, a.logger).Routes())
		api.Mount("/practices", attendancehandlers.NewAttendanceHandlers(a.AttendanceService, a.logger).Routes())
		api.Mount("/regattas", regattahandlers.NewRegattaHandlers(a.RegattaService, a.logger).Routes())
	})

	return r
}

// Router returns the root HTTP handler.
func (a *App) Router() chi.Router {
	return a.router
}

// DB returns the database service.
func (a *App) DB() *bundb.DBService {
	return a.db
}

// Close releases the event bus and database connections.
func (a *App) Close() error {
	if err := a.bus.Close(); err != nil {
		a.logger.Error("Failed to close event bus", slog.Any("error", err))
	}
	return a.db.Close()
}
