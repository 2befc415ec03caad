package gauntletservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

// GetStandings retrieves a gauntlet's full ladder ordered by rank.
func (s *GauntletService) GetStandings(ctx context.Context, gauntletID uuid.UUID) ([]gauntletdb.Position, error) {
	positions, err := s.positions.ListPositions(ctx, s.db, gauntletID)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.GetStandings: %w", err)
	}
	return positions, nil
}

// GetLineupPosition retrieves one lineup's position in a gauntlet, or
// (nil, nil) when the lineup has never appeared in it.
func (s *GauntletService) GetLineupPosition(ctx context.Context, gauntletID, lineupID uuid.UUID) (*gauntletdb.Position, error) {
	position, err := s.positions.GetPosition(ctx, s.db, gauntletID, lineupID)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.GetLineupPosition: %w", err)
	}
	return position, nil
}

// GetProgressionHistory retrieves a gauntlet's rank-change audit trail,
// oldest first. limit <= 0 returns everything.
func (s *GauntletService) GetProgressionHistory(ctx context.Context, gauntletID uuid.UUID, limit int) ([]gauntletdb.Progression, error) {
	entries, err := s.progressions.ListProgressionsForGauntlet(ctx, s.db, gauntletID, limit)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.GetProgressionHistory: %w", err)
	}
	return entries, nil
}

// GetLineupProgression retrieves one lineup's rank-change trail in a
// gauntlet, oldest first.
func (s *GauntletService) GetLineupProgression(ctx context.Context, gauntletID, lineupID uuid.UUID, limit int) ([]gauntletdb.Progression, error) {
	entries, err := s.progressions.ListProgressionsForLineup(ctx, s.db, gauntletID, lineupID, limit)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.GetLineupProgression: %w", err)
	}
	return entries, nil
}

// GetMatch retrieves one recorded match.
func (s *GauntletService) GetMatch(ctx context.Context, matchID uuid.UUID) (*gauntletdb.Match, error) {
	match, err := s.matches.GetMatch(ctx, s.db, matchID)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.GetMatch: %w", err)
	}
	return match, nil
}

// ListMatches retrieves a gauntlet's matches, most recent first.
func (s *GauntletService) ListMatches(ctx context.Context, gauntletID uuid.UUID, limit int) ([]gauntletdb.Match, error) {
	matches, err := s.matches.ListMatchesForGauntlet(ctx, s.db, gauntletID, limit)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.ListMatches: %w", err)
	}
	return matches, nil
}

// ListLineupMatches retrieves the matches a lineup took part in, most
// recent first.
func (s *GauntletService) ListLineupMatches(ctx context.Context, gauntletID, lineupID uuid.UUID, limit int) ([]gauntletdb.Match, error) {
	matches, err := s.matches.ListMatchesForLineup(ctx, s.db, gauntletID, lineupID, limit)
	if err != nil {
		return nil, fmt.Errorf("GauntletService.ListLineupMatches: %w", err)
	}
	return matches, nil
}
