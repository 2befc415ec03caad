package gauntletservice

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

// DB is the database handle the service needs: plain query access plus
// transactional execution. *bun.DB satisfies it.
type DB interface {
	bun.IDB
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

// GauntletService owns the challenge-ladder ranking engine: match
// processing, position bootstrap, and the ladder read paths.
type GauntletService struct {
	db           DB
	gauntlets    gauntletdb.GauntletRepository
	positions    gauntletdb.PositionRepository
	matches      gauntletdb.MatchRepository
	progressions gauntletdb.ProgressionRepository
	publisher    message.Publisher
	logger       *slog.Logger
	metrics      *Metrics
	tracer       trace.Tracer
}

// NewGauntletService creates a new GauntletService.
func NewGauntletService(
	db DB,
	gauntlets gauntletdb.GauntletRepository,
	positions gauntletdb.PositionRepository,
	matches gauntletdb.MatchRepository,
	progressions gauntletdb.ProgressionRepository,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics *Metrics,
	tracer trace.Tracer,
) *GauntletService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("gauntlet")
	}
	return &GauntletService{
		db:           db,
		gauntlets:    gauntlets,
		positions:    positions,
		matches:      matches,
		progressions: progressions,
		publisher:    publisher,
		logger:       logger,
		metrics:      metrics,
		tracer:       tracer,
	}
}
