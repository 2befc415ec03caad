package gauntletservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	gauntletdomain "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/domain"
	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

// ensurePosition returns the lineup's position, creating one at the
// bottom of the ladder (max rank + 1, zeroed record) when the lineup has
// never appeared in this gauntlet. Callers must hold the gauntlet lock;
// a concurrent create would otherwise surface as ErrDuplicatePosition.
func (s *GauntletService) ensurePosition(ctx context.Context, tx bun.Tx, gauntletID, lineupID uuid.UUID) (*gauntletdb.Position, error) {
	position, err := s.positions.GetPosition(ctx, tx, gauntletID, lineupID)
	if err != nil {
		return nil, err
	}
	if position != nil {
		return position, nil
	}

	maxRank, err := s.positions.MaxRank(ctx, tx, gauntletID)
	if err != nil {
		return nil, err
	}

	position = newPosition(gauntletID, lineupID, maxRank+1)
	if err := s.positions.CreatePosition(ctx, tx, position); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Bootstrapped ladder position",
		slog.String("gauntlet_id", gauntletID.String()),
		slog.String("lineup_id", lineupID.String()),
		slog.Int("rank", position.Rank),
	)
	return position, nil
}

func newPosition(gauntletID, lineupID uuid.UUID, rank int) *gauntletdb.Position {
	return &gauntletdb.Position{
		GauntletID: gauntletID,
		LineupID:   lineupID,
		Rank:       rank,
		StreakKind: gauntletdomain.StreakNone,
	}
}

// SeedGauntlet installs the initial ladder for a gauntlet in setup:
// challengers take ranks 1..K in the order given, and the home lineup
// anchors the bottom at K+1. The gauntlet must be empty.
func (s *GauntletService) SeedGauntlet(ctx context.Context, gauntletID, homeLineupID uuid.UUID, challengers []uuid.UUID) ([]gauntletdb.Position, error) {
	ctx, span := s.tracer.Start(ctx, "GauntletService.SeedGauntlet")
	defer span.End()

	var seeded []gauntletdb.Position
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.positions.AcquireGauntletLock(ctx, tx, gauntletID); err != nil {
			return fmt.Errorf("acquire gauntlet lock: %w", err)
		}

		gauntlet, err := s.gauntlets.GetGauntlet(ctx, tx, gauntletID)
		if err != nil {
			return fmt.Errorf("load gauntlet: %w", err)
		}
		if gauntlet.Status != gauntletdomain.StatusSetup {
			return fmt.Errorf("gauntlet %s is %s: %w", gauntlet.ID, gauntlet.Status, ErrNotInSetup)
		}

		count, err := s.positions.CountPositions(ctx, tx, gauntletID)
		if err != nil {
			return fmt.Errorf("count positions: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("gauntlet %s already has %d positions: %w", gauntletID, count, ErrAlreadySeeded)
		}

		for i, lineupID := range challengers {
			position := newPosition(gauntletID, lineupID, i+1)
			if err := s.positions.CreatePosition(ctx, tx, position); err != nil {
				return fmt.Errorf("seed challenger %s: %w", lineupID, err)
			}
			seeded = append(seeded, *position)
		}

		home := newPosition(gauntletID, homeLineupID, len(challengers)+1)
		if err := s.positions.CreatePosition(ctx, tx, home); err != nil {
			return fmt.Errorf("seed home lineup %s: %w", homeLineupID, err)
		}
		seeded = append(seeded, *home)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("GauntletService.SeedGauntlet: %w", err)
	}

	s.logger.InfoContext(ctx, "Gauntlet seeded",
		slog.String("gauntlet_id", gauntletID.String()),
		slog.Int("positions", len(seeded)),
	)
	return seeded, nil
}
