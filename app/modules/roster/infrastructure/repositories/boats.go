package rosterdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BoatRepository defines operations on the boats table.
type BoatRepository interface {
	CreateBoat(ctx context.Context, db bun.IDB, boat *Boat) error
	GetBoat(ctx context.Context, db bun.IDB, boatID uuid.UUID) (*Boat, error)
	ListBoats(ctx context.Context, db bun.IDB) ([]Boat, error)
	UpdateBoat(ctx context.Context, db bun.IDB, boat *Boat) error
	DeleteBoat(ctx context.Context, db bun.IDB, boatID uuid.UUID) error
}

// BoatRepo implements BoatRepository.
type BoatRepo struct{}

func NewBoatRepo() BoatRepository {
	return &BoatRepo{}
}

func (r *BoatRepo) CreateBoat(ctx context.Context, db bun.IDB, boat *Boat) error {
	_, err := db.NewInsert().Model(boat).Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.CreateBoat: %w", err)
	}
	return nil
}

func (r *BoatRepo) GetBoat(ctx context.Context, db bun.IDB, boatID uuid.UUID) (*Boat, error) {
	boat := new(Boat)
	err := db.NewSelect().Model(boat).Where("id = ?", boatID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rosterdb.GetBoat: %w", err)
	}
	return boat, nil
}

func (r *BoatRepo) ListBoats(ctx context.Context, db bun.IDB) ([]Boat, error) {
	var boats []Boat
	err := db.NewSelect().Model(&boats).Order("name ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rosterdb.ListBoats: %w", err)
	}
	return boats, nil
}

func (r *BoatRepo) UpdateBoat(ctx context.Context, db bun.IDB, boat *Boat) error {
	boat.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().Model(boat).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.UpdateBoat: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rosterdb.UpdateBoat: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BoatRepo) DeleteBoat(ctx context.Context, db bun.IDB, boatID uuid.UUID) error {
	res, err := db.NewDelete().Model((*Boat)(nil)).Where("id = ?", boatID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.DeleteBoat: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rosterdb.DeleteBoat: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
