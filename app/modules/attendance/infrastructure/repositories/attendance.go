package attendancedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrNotFound = errors.New("attendancedb: not found")

// AttendanceRepository defines operations on practices and attendance
// marks. Marks are upserted so re-marking an athlete replaces the
// earlier status.
type AttendanceRepository interface {
	CreatePractice(ctx context.Context, db bun.IDB, practice *Practice) error
	GetPractice(ctx context.Context, db bun.IDB, practiceID uuid.UUID) (*Practice, error)
	ListPractices(ctx context.Context, db bun.IDB, limit int) ([]Practice, error)
	UpsertMark(ctx context.Context, db bun.IDB, mark *Mark) error
	ListMarks(ctx context.Context, db bun.IDB, practiceID uuid.UUID) ([]Mark, error)
}

// AttendanceRepo implements AttendanceRepository.
type AttendanceRepo struct{}

func NewAttendanceRepo() AttendanceRepository {
	return &AttendanceRepo{}
}

func (r *AttendanceRepo) CreatePractice(ctx context.Context, db bun.IDB, practice *Practice) error {
	_, err := db.NewInsert().Model(practice).Exec(ctx)
	if err != nil {
		return fmt.Errorf("attendancedb.CreatePractice: %w", err)
	}
	return nil
}

func (r *AttendanceRepo) GetPractice(ctx context.Context, db bun.IDB, practiceID uuid.UUID) (*Practice, error) {
	practice := new(Practice)
	err := db.NewSelect().Model(practice).Where("id = ?", practiceID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("attendancedb.GetPractice: %w", err)
	}
	return practice, nil
}

func (r *AttendanceRepo) ListPractices(ctx context.Context, db bun.IDB, limit int) ([]Practice, error) {
	var practices []Practice
	q := db.NewSelect().Model(&practices).Order("scheduled_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("attendancedb.ListPractices: %w", err)
	}
	return practices, nil
}

func (r *AttendanceRepo) UpsertMark(ctx context.Context, db bun.IDB, mark *Mark) error {
	_, err := db.NewInsert().
		Model(mark).
		On("CONFLICT (practice_id, athlete_id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("marked_at = EXCLUDED.marked_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("attendancedb.UpsertMark: %w", err)
	}
	return nil
}

func (r *AttendanceRepo) ListMarks(ctx context.Context, db bun.IDB, practiceID uuid.UUID) ([]Mark, error) {
	var marks []Mark
	err := db.NewSelect().
		Model(&marks).
		Where("practice_id = ?", practiceID).
		Order("athlete_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("attendancedb.ListMarks: %w", err)
	}
	return marks, nil
}
