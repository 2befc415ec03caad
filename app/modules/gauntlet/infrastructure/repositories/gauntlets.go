package gauntletdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	gauntletdomain "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/domain"
)

// GauntletRepository defines operations on the gauntlets table.
type GauntletRepository interface {
	// CreateGauntlet inserts a new gauntlet in setup status.
	CreateGauntlet(ctx context.Context, db bun.IDB, gauntlet *Gauntlet) error

	// GetGauntlet retrieves a gauntlet by id. Returns ErrNotFound when absent.
	GetGauntlet(ctx context.Context, db bun.IDB, gauntletID uuid.UUID) (*Gauntlet, error)

	// ListGauntlets retrieves all gauntlets, newest first.
	ListGauntlets(ctx context.Context, db bun.IDB) ([]Gauntlet, error)

	// UpdateStatus moves a gauntlet to a new lifecycle status.
	UpdateStatus(ctx context.Context, db bun.IDB, gauntletID uuid.UUID, status gauntletdomain.Status) error
}

// GauntletRepo implements GauntletRepository.
type GauntletRepo struct{}

func NewGauntletRepo() GauntletRepository {
	return &GauntletRepo{}
}

func (r *GauntletRepo) CreateGauntlet(ctx context.Context, db bun.IDB, gauntlet *Gauntlet) error {
	if gauntlet.Status == "" {
		gauntlet.Status = gauntletdomain.StatusSetup
	}
	_, err := db.NewInsert().Model(gauntlet).Exec(ctx)
	if err != nil {
		return fmt.Errorf("gauntletdb.CreateGauntlet: %w", err)
	}
	return nil
}

func (r *GauntletRepo) GetGauntlet(ctx context.Context, db bun.IDB, gauntletID uuid.UUID) (*Gauntlet, error) {
	gauntlet := new(Gauntlet)
	err := db.NewSelect().
		Model(gauntlet).
		Where("id = ?", gauntletID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gauntletdb.GetGauntlet: %w", err)
	}
	return gauntlet, nil
}

func (r *GauntletRepo) ListGauntlets(ctx context.Context, db bun.IDB) ([]Gauntlet, error) {
	var gauntlets []Gauntlet
	err := db.NewSelect().
		Model(&gauntlets).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gauntletdb.ListGauntlets: %w", err)
	}
	return gauntlets, nil
}

func (r *GauntletRepo) UpdateStatus(ctx context.Context, db bun.IDB, gauntletID uuid.UUID, status gauntletdomain.Status) error {
	res, err := db.NewUpdate().
		Model((*Gauntlet)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", gauntletID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gauntletdb.UpdateStatus: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("gauntletdb.UpdateStatus: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
