package regattadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrNotFound = errors.New("regattadb: not found")

// RegattaRepository defines operations on regattas and race results.
type RegattaRepository interface {
	CreateRegatta(ctx context.Context, db bun.IDB, regatta *Regatta) error
	GetRegatta(ctx context.Context, db bun.IDB, regattaID uuid.UUID) (*Regatta, error)
	ListRegattas(ctx context.Context, db bun.IDB) ([]Regatta, error)
	AddResult(ctx context.Context, db bun.IDB, result *RaceResult) error
	ListResults(ctx context.Context, db bun.IDB, regattaID uuid.UUID) ([]RaceResult, error)
}

// RegattaRepo implements RegattaRepository.
type RegattaRepo struct{}

func NewRegattaRepo() RegattaRepository {
	return &RegattaRepo{}
}

func (r *RegattaRepo) CreateRegatta(ctx context.Context, db bun.IDB, regatta *Regatta) error {
	_, err := db.NewInsert().Model(regatta).Exec(ctx)
	if err != nil {
		return fmt.Errorf("regattadb.CreateRegatta: %w", err)
	}
	return nil
}

func (r *RegattaRepo) GetRegatta(ctx context.Context, db bun.IDB, regattaID uuid.UUID) (*Regatta, error) {
	regatta := new(Regatta)
	err := db.NewSelect().Model(regatta).Where("id = ?", regattaID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("regattadb.GetRegatta: %w", err)
	}
	return regatta, nil
}

func (r *RegattaRepo) ListRegattas(ctx context.Context, db bun.IDB) ([]Regatta, error) {
	var regattas []Regatta
	err := db.NewSelect().Model(&regattas).Order("start_date DESC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("regattadb.ListRegattas: %w", err)
	}
	return regattas, nil
}

func (r *RegattaRepo) AddResult(ctx context.Context, db bun.IDB, result *RaceResult) error {
	_, err := db.NewInsert().Model(result).Exec(ctx)
	if err != nil {
		return fmt.Errorf("regattadb.AddResult: %w", err)
	}
	return nil
}

func (r *RegattaRepo) ListResults(ctx context.Context, db bun.IDB, regattaID uuid.UUID) ([]RaceResult, error) {
	var results []RaceResult
	err := db.NewSelect().
		Model(&results).
		Where("regatta_id = ?", regattaID).
		Order("event ASC", "placement ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("regattadb.ListResults: %w", err)
	}
	return results, nil
}
