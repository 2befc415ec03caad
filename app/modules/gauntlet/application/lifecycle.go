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

// CreateGauntletCommand names a new competition and its home lineup.
type CreateGauntletCommand struct {
	Name         string
	BoatClass    string
	HomeLineupID uuid.UUID
}

// CreateGauntlet creates a competition in setup status. Seeding and
// activation are separate steps.
func (s *GauntletService) CreateGauntlet(ctx context.Context, cmd CreateGauntletCommand) (*gauntletdb.Gauntlet, error) {
	gauntlet := &gauntletdb.Gauntlet{
		Name:         cmd.Name,
		BoatClass:    cmd.BoatClass,
		Status:       gauntletdomain.StatusSetup,
		HomeLineupID: cmd.HomeLineupID,
	}
	if err := s.gauntlets.CreateGauntlet(ctx, s.db, gauntlet); err != nil {
		return nil, fmt.Errorf("GauntletService.CreateGauntlet: %w", err)
	}

	s.logger.InfoContext(ctx, "Gauntlet created",
		slog.String("gauntlet_id", gauntlet.ID.String()),
		slog.String("name", gauntlet.Name),
		slog.String("boat_class", gauntlet.BoatClass),
	)
	return gauntlet, nil
}

// GetGauntlet retrieves one competition by id.
func (s *GauntletService) GetGauntlet(ctx context.Context, gauntletID uuid.UUID) (*gauntletdb.Gauntlet, error) {
	gauntlet, err := s.gauntlets.GetGauntlet(ctx, s.db, gauntletID)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.GetGauntlet: %w", err)
	}
	return gauntlet, nil
}

// ListGauntlets retrieves all competitions, newest first.
func (s *GauntletService) ListGauntlets(ctx context.Context) ([]gauntletdb.Gauntlet, error) {
	gauntlets, err := s.gauntlets.ListGauntlets(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.ListGauntlets: %w", err)
	}
	return gauntlets, nil
}

// TransitionGauntlet moves a competition through its lifecycle,
// rejecting transitions the state machine does not allow.
func (s *GauntletService) TransitionGauntlet(ctx context.Context, gauntletID uuid.UUID, to gauntletdomain.Status) (*gauntletdb.Gauntlet, error) {
	var gauntlet *gauntletdb.Gauntlet
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		current, err := s.gauntlets.GetGauntlet(ctx, tx, gauntletID)
		if err != nil {
			return fmt.Errorf("load gauntlet: %w", err)
		}
		if !gauntletdomain.CanTransition(current.Status, to) {
			return fmt.Errorf("gauntlet %s from %s to %s: %w", gauntletID, current.Status, to, ErrInvalidTransition)
		}
		if err := s.gauntlets.UpdateStatus(ctx, tx, gauntletID, to); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		current.Status = to
		gauntlet = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("GauntletService.TransitionGauntlet: %w", err)
	}

	s.logger.InfoContext(ctx, "Gauntlet status changed",
		slog.String("gauntlet_id", gauntletID.String()),
		slog.String("status", string(to)),
	)
	return gauntlet, nil
}

// AdjustRank moves a lineup to an explicit rank outside match
// processing, for coach corrections. The move is recorded as a
// manual_adjustment progression with no match reference.
func (s *GauntletService) AdjustRank(ctx context.Context, gauntletID, lineupID uuid.UUID, newRank int) (*gauntletdb.Position, error) {
	var position *gauntletdb.Position
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.positions.AcquireGauntletLock(ctx, tx, gauntletID); err != nil {
			return fmt.Errorf("acquire gauntlet lock: %w", err)
		}

		var err error
		position, err = s.positions.GetPosition(ctx, tx, gauntletID, lineupID)
		if err != nil {
			return err
		}
		if position == nil {
			return gauntletdb.ErrPositionNotFound
		}

		count, err := s.positions.CountPositions(ctx, tx, gauntletID)
		if err != nil {
			return fmt.Errorf("count positions: %w", err)
		}
		if newRank < 1 || newRank > count {
			return fmt.Errorf("rank %d outside [1, %d]: %w", newRank, count, ErrRankOutOfRange)
		}
		if newRank == position.Rank {
			return nil
		}

		oldRank := position.Rank
		position.PreviousRank = &oldRank
		position.Rank = newRank

		if err := s.progressions.InsertProgression(ctx, tx, &gauntletdb.Progression{
			GauntletID: gauntletID,
			LineupID:   lineupID,
			FromRank:   oldRank,
			ToRank:     newRank,
			Delta:      newRank - oldRank,
			Reason:     gauntletdomain.ReasonManualAdjustment,
		}); err != nil {
			return fmt.Errorf("append progression: %w", err)
		}
		if err := s.positions.UpdatePosition(ctx, tx, position); err != nil {
			return fmt.Errorf("update position: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("GauntletService.AdjustRank: %w", err)
	}
	return position, nil
}
