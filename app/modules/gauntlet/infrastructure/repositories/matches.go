package gauntletdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MatchRepository defines operations on the gauntlet_matches table.
// Matches are immutable once written; no update or delete is exposed.
type MatchRepository interface {
	// CreateMatch persists a new match record.
	CreateMatch(ctx context.Context, db bun.IDB, match *Match) error

	// GetMatch retrieves a match by id. Returns ErrNotFound when absent.
	GetMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (*Match, error)

	// ListMatchesForGauntlet retrieves matches for a gauntlet, most
	// recent first.
	ListMatchesForGauntlet(ctx context.Context, db bun.IDB, gauntletID uuid.UUID, limit int) ([]Match, error)

	// ListMatchesForLineup retrieves matches a lineup took part in,
	// most recent first.
	ListMatchesForLineup(ctx context.Context, db bun.IDB, gauntletID, lineupID uuid.UUID, limit int) ([]Match, error)
}

// MatchRepo implements MatchRepository.
type MatchRepo struct{}

func NewMatchRepo() MatchRepository {
	return &MatchRepo{}
}

func (r *MatchRepo) CreateMatch(ctx context.Context, db bun.IDB, match *Match) error {
	_, err := db.NewInsert().Model(match).Exec(ctx)
	if err != nil {
		return fmt.Errorf("gauntletdb.CreateMatch: %w", err)
	}
	return nil
}

func (r *MatchRepo) GetMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (*Match, error) {
	match := new(Match)
	err := db.NewSelect().
		Model(match).
		Where("id = ?", matchID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gauntletdb.GetMatch: %w", err)
	}
	return match, nil
}

func (r *MatchRepo) ListMatchesForGauntlet(ctx context.Context, db bun.IDB, gauntletID uuid.UUID, limit int) ([]Match, error) {
	var matches []Match
	q := db.NewSelect().
		Model(&matches).
		Where("gauntlet_id = ?", gauntletID).
		Order("match_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("gauntletdb.ListMatchesForGauntlet: %w", err)
	}
	return matches, nil
}

func (r *MatchRepo) ListMatchesForLineup(ctx context.Context, db bun.IDB, gauntletID, lineupID uuid.UUID, limit int) ([]Match, error) {
	var matches []Match
	q := db.NewSelect().
		Model(&matches).
		Where("gauntlet_id = ?", gauntletID).
		Where("side_a_lineup_id = ? OR side_b_lineup_id = ?", lineupID, lineupID).
		Order("match_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("gauntletdb.ListMatchesForLineup: %w", err)
	}
	return matches, nil
}
