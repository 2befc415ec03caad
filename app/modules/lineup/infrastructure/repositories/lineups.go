package lineupdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LineupRepository defines operations on the lineups and lineup_seats
// tables. Seats are replaced wholesale; there is no per-seat update.
type LineupRepository interface {
	CreateLineup(ctx context.Context, db bun.IDB, lineup *Lineup, seats []LineupSeat) error
	GetLineup(ctx context.Context, db bun.IDB, lineupID uuid.UUID) (*Lineup, error)
	ListLineups(ctx context.Context, db bun.IDB) ([]Lineup, error)
	ReplaceSeats(ctx context.Context, db bun.IDB, lineupID uuid.UUID, seats []LineupSeat) error
	DeleteLineup(ctx context.Context, db bun.IDB, lineupID uuid.UUID) error
}

// LineupRepo implements LineupRepository.
type LineupRepo struct{}

func NewLineupRepo() LineupRepository {
	return &LineupRepo{}
}

func (r *LineupRepo) CreateLineup(ctx context.Context, db bun.IDB, lineup *Lineup, seats []LineupSeat) error {
	if _, err := db.NewInsert().Model(lineup).Exec(ctx); err != nil {
		return fmt.Errorf("lineupdb.CreateLineup: %w", err)
	}
	for i := range seats {
		seats[i].LineupID = lineup.ID
	}
	if len(seats) > 0 {
		if _, err := db.NewInsert().Model(&seats).Exec(ctx); err != nil {
			return fmt.Errorf("lineupdb.CreateLineup: %w", err)
		}
	}
	return nil
}

func (r *LineupRepo) GetLineup(ctx context.Context, db bun.IDB, lineupID uuid.UUID) (*Lineup, error) {
	lineup := new(Lineup)
	err := db.NewSelect().
		Model(lineup).
		Relation("Seats").
		Where("l.id = ?", lineupID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lineupdb.GetLineup: %w", err)
	}
	return lineup, nil
}

func (r *LineupRepo) ListLineups(ctx context.Context, db bun.IDB) ([]Lineup, error) {
	var lineups []Lineup
	err := db.NewSelect().
		Model(&lineups).
		Relation("Seats").
		Order("l.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("lineupdb.ListLineups: %w", err)
	}
	return lineups, nil
}

func (r *LineupRepo) ReplaceSeats(ctx context.Context, db bun.IDB, lineupID uuid.UUID, seats []LineupSeat) error {
	if _, err := db.NewDelete().Model((*LineupSeat)(nil)).Where("lineup_id = ?", lineupID).Exec(ctx); err != nil {
		return fmt.Errorf("lineupdb.ReplaceSeats: %w", err)
	}
	for i := range seats {
		seats[i].LineupID = lineupID
	}
	if len(seats) > 0 {
		if _, err := db.NewInsert().Model(&seats).Exec(ctx); err != nil {
			return fmt.Errorf("lineupdb.ReplaceSeats: %w", err)
		}
	}
	if _, err := db.NewUpdate().
		Model((*Lineup)(nil)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", lineupID).
		Exec(ctx); err != nil {
		return fmt.Errorf("lineupdb.ReplaceSeats: %w", err)
	}
	return nil
}

func (r *LineupRepo) DeleteLineup(ctx context.Context, db bun.IDB, lineupID uuid.UUID) error {
	if _, err := db.NewDelete().Model((*LineupSeat)(nil)).Where("lineup_id = ?", lineupID).Exec(ctx); err != nil {
		return fmt.Errorf("lineupdb.DeleteLineup: %w", err)
	}
	res, err := db.NewDelete().Model((*Lineup)(nil)).Where("id = ?", lineupID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("lineupdb.DeleteLineup: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("lineupdb.DeleteLineup: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
