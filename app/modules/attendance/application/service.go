package attendanceservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	attendancedb "github.com/stonecove-rowing/crewbot/app/modules/attendance/infrastructure/repositories"
)

// AttendanceService owns practices and attendance marks.
type AttendanceService struct {
	db       bun.IDB
	repo     attendancedb.AttendanceRepository
	clock    Clock
	location *time.Location
	logger   *slog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(db bun.IDB, repo attendancedb.AttendanceRepository, clock Clock, loc *time.Location, logger *slog.Logger) *AttendanceService {
	if clock == nil {
		clock = NewClock()
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceService{db: db, repo: repo, clock: clock, location: loc, logger: logger}
}

// CreatePracticeCommand schedules a session. When accepts either RFC
// 3339 or natural language ("tomorrow 6am").
type CreatePracticeCommand struct {
	Title    string
	When     string
	Location string
	Notes    string
}

func (s *AttendanceService) CreatePractice(ctx context.Context, cmd CreatePracticeCommand) (*attendancedb.Practice, error) {
	scheduledAt, err := ParsePracticeTime(cmd.When, s.clock, s.location)
	if err != nil {
		return nil, fmt.Errorf("AttendanceService.CreatePractice: %w", err)
	}

	practice := &attendancedb.Practice{
		Title:       cmd.Title,
		ScheduledAt: scheduledAt.UTC(),
		Location:    cmd.Location,
		Notes:       cmd.Notes,
	}
	if err := s.repo.CreatePractice(ctx, s.db, practice); err != nil {
		return nil, fmt.Errorf("AttendanceService.CreatePractice: %w", err)
	}

	s.logger.InfoContext(ctx, "Practice scheduled",
		slog.String("practice_id", practice.ID.String()),
		slog.Time("scheduled_at", practice.ScheduledAt),
	)
	return practice, nil
}

func (s *AttendanceService) GetPractice(ctx context.Context, practiceID uuid.UUID) (*attendancedb.Practice, error) {
	practice, err := s.repo.GetPractice(ctx, s.db, practiceID)
	if err != nil {
		return nil, fmt.Errorf("AttendanceService.GetPractice: %w", err)
	}
	return practice, nil
}

func (s *AttendanceService) ListPractices(ctx context.Context, limit int) ([]attendancedb.Practice, error) {
	practices, err := s.repo.ListPractices(ctx, s.db, limit)
	if err != nil {
		return nil, fmt.Errorf("AttendanceService.ListPractices: %w", err)
	}
	return practices, nil
}

// MarkAttendance records or replaces one athlete's status for a practice.
func (s *AttendanceService) MarkAttendance(ctx context.Context, practiceID, athleteID uuid.UUID, status attendancedb.MarkStatus) (*attendancedb.Mark, error) {
	switch status {
	case attendancedb.MarkPresent, attendancedb.MarkAbsent, attendancedb.MarkExcused:
	default:
		return nil, fmt.Errorf("AttendanceService.MarkAttendance: unknown status %q", status)
	}

	if _, err := s.repo.GetPractice(ctx, s.db, practiceID); err != nil {
		return nil, fmt.Errorf("AttendanceService.MarkAttendance: %w", err)
	}

	mark := &attendancedb.Mark{
		PracticeID: practiceID,
		AthleteID:  athleteID,
		Status:     status,
		MarkedAt:   s.clock.Now().UTC(),
	}
	if err := s.repo.UpsertMark(ctx, s.db, mark); err != nil {
		return nil, fmt.Errorf("AttendanceService.MarkAttendance: %w", err)
	}
	return mark, nil
}

func (s *AttendanceService) ListMarks(ctx context.Context, practiceID uuid.UUID) ([]attendancedb.Mark, error) {
	marks, err := s.repo.ListMarks(ctx, s.db, practiceID)
	if err != nil {
		return nil, fmt.Errorf("AttendanceService.ListMarks: %w", err)
	}
	return marks, nil
}
