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

// AthleteRepository defines operations on the athletes table.
type AthleteRepository interface {
	CreateAthlete(ctx context.Context, db bun.IDB, athlete *Athlete) error
	GetAthlete(ctx context.Context, db bun.IDB, athleteID uuid.UUID) (*Athlete, error)
	GetAthleteByName(ctx context.Context, db bun.IDB, name string) (*Athlete, error)
	ListAthletes(ctx context.Context, db bun.IDB, activeOnly bool) ([]Athlete, error)
	UpdateAthlete(ctx context.Context, db bun.IDB, athlete *Athlete) error
	DeactivateAthlete(ctx context.Context, db bun.IDB, athleteID uuid.UUID) error
}

// AthleteRepo implements AthleteRepository.
type AthleteRepo struct{}

func NewAthleteRepo() AthleteRepository {
	return &AthleteRepo{}
}

func (r *AthleteRepo) CreateAthlete(ctx context.Context, db bun.IDB, athlete *Athlete) error {
	_, err := db.NewInsert().Model(athlete).Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.CreateAthlete: %w", err)
	}
	return nil
}

func (r *AthleteRepo) GetAthlete(ctx context.Context, db bun.IDB, athleteID uuid.UUID) (*Athlete, error) {
	athlete := new(Athlete)
	err := db.NewSelect().Model(athlete).Where("id = ?", athleteID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rosterdb.GetAthlete: %w", err)
	}
	return athlete, nil
}

func (r *AthleteRepo) GetAthleteByName(ctx context.Context, db bun.IDB, name string) (*Athlete, error) {
	athlete := new(Athlete)
	err := db.NewSelect().Model(athlete).Where("name = ?", name).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rosterdb.GetAthleteByName: %w", err)
	}
	return athlete, nil
}

func (r *AthleteRepo) ListAthletes(ctx context.Context, db bun.IDB, activeOnly bool) ([]Athlete, error) {
	var athletes []Athlete
	q := db.NewSelect().Model(&athletes).Order("name ASC")
	if activeOnly {
		q = q.Where("active = TRUE")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("rosterdb.ListAthletes: %w", err)
	}
	return athletes, nil
}

func (r *AthleteRepo) UpdateAthlete(ctx context.Context, db bun.IDB, athlete *Athlete) error {
	athlete.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().Model(athlete).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.UpdateAthlete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rosterdb.UpdateAthlete: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AthleteRepo) DeactivateAthlete(ctx context.Context, db bun.IDB, athleteID uuid.UUID) error {
	res, err := db.NewUpdate().
		Model((*Athlete)(nil)).
		Set("active = FALSE").
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", athleteID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rosterdb.DeactivateAthlete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rosterdb.DeactivateAthlete: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
