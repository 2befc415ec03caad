package gauntletdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const pgUniqueViolation = "23505"

// PositionRepository defines operations on the gauntlet_positions table.
// All methods take a bun.IDB so they compose into the caller's
// transaction; match processing must run every call against the same tx.
type PositionRepository interface {
	// GetPosition retrieves a lineup's position in a gauntlet.
	// Returns (nil, nil) when the lineup has no position yet.
	GetPosition(ctx context.Context, db bun.IDB, gauntletID, lineupID uuid.UUID) (*Position, error)

	// CreatePosition inserts a new position. Returns ErrDuplicatePosition
	// if one already exists for the (gauntlet, lineup) pair.
	CreatePosition(ctx context.Context, db bun.IDB, position *Position) error

	// MaxRank returns the highest rank held in a gauntlet, 0 when empty.
	MaxRank(ctx context.Context, db bun.IDB, gauntletID uuid.UUID) (int, error)

	// CountPositions returns the number of positions in a gauntlet.
	CountPositions(ctx context.Context, db bun.IDB, gauntletID uuid.UUID) (int, error)

	// UpdatePosition writes a position's mutable fields by primary key.
	// Returns ErrPositionNotFound when the row vanished mid-transaction.
	UpdatePosition(ctx context.Context, db bun.IDB, position *Position) error

	// ListPositions retrieves all positions in a gauntlet ordered by rank.
	ListPositions(ctx context.Context, db bun.IDB, gauntletID uuid.UUID) ([]Position, error)

	// AcquireGauntletLock acquires a pg_advisory_xact_lock for the
	// gauntlet. Must be called within a transaction; serializes all
	// match processing for one gauntlet.
	AcquireGauntletLock(ctx context.Context, db bun.IDB, gauntletID uuid.UUID) error
}

// PositionRepo implements PositionRepository.
type PositionRepo struct{}

func NewPositionRepo() PositionRepository {
	return &PositionRepo{}
}

func (r *PositionRepo) GetPosition(ctx context.Context, db bun.IDB, gauntletID, lineupID uuid.UUID) (*Position, error) {
	position := new(Position)
	err := db.NewSelect().
		Model(position).
		Where("gauntlet_id = ?", gauntletID).
		Where("lineup_id = ?", lineupID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("gauntletdb.GetPosition: %w", err)
	}
	return position, nil
}

func (r *PositionRepo) CreatePosition(ctx context.Context, db bun.IDB, position *Position) error {
	_, err := db.NewInsert().Model(position).Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation {
			return ErrDuplicatePosition
		}
		return fmt.Errorf("gauntletdb.CreatePosition: %w", err)
	}
	return nil
}

func (r *PositionRepo) MaxRank(ctx context.Context, db bun.IDB, gauntletID uuid.UUID) (int, error) {
	var maxRank int
	err := db.NewSelect().
		Model((*Position)(nil)).
		ColumnExpr("COALESCE(MAX(rank), 0)").
		Where("gauntlet_id = ?", gauntletID).
		Scan(ctx, &maxRank)
	if err != nil {
		return 0, fmt.Errorf("gauntletdb.MaxRank: %w", err)
	}
	return maxRank, nil
}

func (r *PositionRepo) CountPositions(ctx context.Context, db bun.IDB, gauntletID uuid.UUID) (int, error) {
	count, err := db.NewSelect().
		Model((*Position)(nil)).
		Where("gauntlet_id = ?", gauntletID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("gauntletdb.CountPositions: %w", err)
	}
	return count, nil
}

func (r *PositionRepo) UpdatePosition(ctx context.Context, db bun.IDB, position *Position) error {
	position.UpdatedAt = time.Now().UTC()

	res, err := db.NewUpdate().
		Model(position).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gauntletdb.UpdatePosition: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("gauntletdb.UpdatePosition: %w", err)
	}
	if rows == 0 {
		return ErrPositionNotFound
	}
	return nil
}

func (r *PositionRepo) ListPositions(ctx context.Context, db bun.IDB, gauntletID uuid.UUID) ([]Position, error) {
	var positions []Position
	err := db.NewSelect().
		Model(&positions).
		Where("gauntlet_id = ?", gauntletID).
		Order("rank ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gauntletdb.ListPositions: %w", err)
	}
	return positions, nil
}

func (r *PositionRepo) AcquireGauntletLock(ctx context.Context, db bun.IDB, gauntletID uuid.UUID) error {
	// Use hashtext() for a stable int8 from the gauntlet id
	_, err := db.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", gauntletID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("gauntletdb.AcquireGauntletLock: %w", err)
	}
	return nil
}
