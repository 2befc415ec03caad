package gauntletdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProgressionRepository defines the append-only write path and the read
// paths for the gauntlet_progressions table. Entries are never updated
// or deleted.
type ProgressionRepository interface {
	// InsertProgression appends one progression entry.
	InsertProgression(ctx context.Context, db bun.IDB, entry *Progression) error

	// ListProgressionsForGauntlet retrieves progression history for a
	// gauntlet, oldest first.
	ListProgressionsForGauntlet(ctx context.Context, db bun.IDB, gauntletID uuid.UUID, limit int) ([]Progression, error)

	// ListProgressionsForLineup retrieves a lineup's progression
	// history in a gauntlet, oldest first.
	ListProgressionsForLineup(ctx context.Context, db bun.IDB, gauntletID, lineupID uuid.UUID, limit int) ([]Progression, error)
}

// ProgressionRepo implements ProgressionRepository.
type ProgressionRepo struct{}

func NewProgressionRepo() ProgressionRepository {
	return &ProgressionRepo{}
}

func (r *ProgressionRepo) InsertProgression(ctx context.Context, db bun.IDB, entry *Progression) error {
	_, err := db.NewInsert().Model(entry).Exec(ctx)
	if err != nil {
		return fmt.Errorf("gauntletdb.InsertProgression: %w", err)
	}
	return nil
}

func (r *ProgressionRepo) ListProgressionsForGauntlet(ctx context.Context, db bun.IDB, gauntletID uuid.UUID, limit int) ([]Progression, error) {
	var entries []Progression
	q := db.NewSelect().
		Model(&entries).
		Where("gauntlet_id = ?", gauntletID).
		Order("occurred_at ASC", "id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("gauntletdb.ListProgressionsForGauntlet: %w", err)
	}
	return entries, nil
}

func (r *ProgressionRepo) ListProgressionsForLineup(ctx context.Context, db bun.IDB, gauntletID, lineupID uuid.UUID, limit int) ([]Progression, error) {
	var entries []Progression
	q := db.NewSelect().
		Model(&entries).
		Where("gauntlet_id = ?", gauntletID).
		Where("lineup_id = ?", lineupID).
		Order("occurred_at ASC", "id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("gauntletdb.ListProgressionsForLineup: %w", err)
	}
	return entries, nil
}
