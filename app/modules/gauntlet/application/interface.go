package gauntletservice

import (
	"context"

	"github.com/google/uuid"

	gauntletdomain "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/domain"
	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

// Service is the gauntlet module's application surface, consumed by the
// HTTP handlers.
type Service interface {
	CreateGauntlet(ctx context.Context, cmd CreateGauntletCommand) (*gauntletdb.Gauntlet, error)
	GetGauntlet(ctx context.Context, gauntletID uuid.UUID) (*gauntletdb.Gauntlet, error)
	ListGauntlets(ctx context.Context) ([]gauntletdb.Gauntlet, error)
	TransitionGauntlet(ctx context.Context, gauntletID uuid.UUID, to gauntletdomain.Status) (*gauntletdb.Gauntlet, error)
	SeedGauntlet(ctx context.Context, gauntletID, homeLineupID uuid.UUID, challengers []uuid.UUID) ([]gauntletdb.Position, error)

	ProcessMatch(ctx context.Context, cmd ProcessMatchCommand) (*ProcessMatchResult, error)
	AdjustRank(ctx context.Context, gauntletID, lineupID uuid.UUID, newRank int) (*gauntletdb.Position, error)

	GetStandings(ctx context.Context, gauntletID uuid.UUID) ([]gauntletdb.Position, error)
	GetLineupPosition(ctx context.Context, gauntletID, lineupID uuid.UUID) (*gauntletdb.Position, error)
	GetProgressionHistory(ctx context.Context, gauntletID uuid.UUID, limit int) ([]gauntletdb.Progression, error)
	GetLineupProgression(ctx context.Context, gauntletID, lineupID uuid.UUID, limit int) ([]gauntletdb.Progression, error)
	GetMatch(ctx context.Context, matchID uuid.UUID) (*gauntletdb.Match, error)
	ListMatches(ctx context.Context, gauntletID uuid.UUID, limit int) ([]gauntletdb.Match, error)
	ListLineupMatches(ctx context.Context, gauntletID, lineupID uuid.UUID, limit int) ([]gauntletdb.Match, error)

	ExportStandings(ctx context.Context, gauntletID uuid.UUID) ([]byte, error)
}

var _ Service = (*GauntletService)(nil)
