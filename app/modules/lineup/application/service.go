package lineupservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	lineupdb "github.com/stonecove-rowing/crewbot/app/modules/lineup/infrastructure/repositories"
	rosterdb "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/repositories"
)

// DB is the transactional database handle; *bun.DB satisfies it.
type DB interface {
	bun.IDB
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

// LineupService owns named crews. It consults the roster for seat-count
// validation but never mutates roster state.
type LineupService struct {
	db      DB
	lineups lineupdb.LineupRepository
	boats   rosterdb.BoatRepository
	logger  *slog.Logger
}

// NewLineupService creates a new LineupService.
func NewLineupService(db DB, lineups lineupdb.LineupRepository, boats rosterdb.BoatRepository, logger *slog.Logger) *LineupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LineupService{db: db, lineups: lineups, boats: boats, logger: logger}
}

// SeatAssignment places one athlete in one seat. Seat 0 is the cox.
type SeatAssignment struct {
	AthleteID uuid.UUID
	Seat      int
}

// CreateLineupCommand names a crew and seats it in a boat.
type CreateLineupCommand struct {
	Name   string
	BoatID uuid.UUID
	Seats  []SeatAssignment
}

func (s *LineupService) CreateLineup(ctx context.Context, cmd CreateLineupCommand) (*lineupdb.Lineup, error) {
	boat, err := s.boats.GetBoat(ctx, s.db, cmd.BoatID)
	if err != nil {
		return nil, fmt.Errorf("LineupService.CreateLineup: %w", err)
	}
	if err := validateSeats(boat, cmd.Seats); err != nil {
		return nil, fmt.Errorf("LineupService.CreateLineup: %w", err)
	}

	lineup := &lineupdb.Lineup{
		Name:   cmd.Name,
		BoatID: cmd.BoatID,
	}
	seats := make([]lineupdb.LineupSeat, len(cmd.Seats))
	for i, a := range cmd.Seats {
		seats[i] = lineupdb.LineupSeat{AthleteID: a.AthleteID, Seat: a.Seat}
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.lineups.CreateLineup(ctx, tx, lineup, seats)
	})
	if err != nil {
		return nil, fmt.Errorf("LineupService.CreateLineup: %w", err)
	}

	s.logger.InfoContext(ctx, "Lineup created",
		slog.String("lineup_id", lineup.ID.String()),
		slog.String("name", lineup.Name),
		slog.Int("seats", len(seats)),
	)
	return s.GetLineup(ctx, lineup.ID)
}

func (s *LineupService) GetLineup(ctx context.Context, lineupID uuid.UUID) (*lineupdb.Lineup, error) {
	lineup, err := s.lineups.GetLineup(ctx, s.db, lineupID)
	if err != nil {
		return nil, fmt.Errorf("LineupService.GetLineup: %w", err)
	}
	return lineup, nil
}

func (s *LineupService) ListLineups(ctx context.Context) ([]lineupdb.Lineup, error) {
	lineups, err := s.lineups.ListLineups(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("LineupService.ListLineups: %w", err)
	}
	return lineups, nil
}

// ReseatLineup replaces a lineup's seat assignments wholesale.
func (s *LineupService) ReseatLineup(ctx context.Context, lineupID uuid.UUID, assignments []SeatAssignment) (*lineupdb.Lineup, error) {
	lineup, err := s.lineups.GetLineup(ctx, s.db, lineupID)
	if err != nil {
		return nil, fmt.Errorf("LineupService.ReseatLineup: %w", err)
	}
	boat, err := s.boats.GetBoat(ctx, s.db, lineup.BoatID)
	if err != nil {
		return nil, fmt.Errorf("LineupService.ReseatLineup: %w", err)
	}
	if err := validateSeats(boat, assignments); err != nil {
		return nil, fmt.Errorf("LineupService.ReseatLineup: %w", err)
	}

	seats := make([]lineupdb.LineupSeat, len(assignments))
	for i, a := range assignments {
		seats[i] = lineupdb.LineupSeat{AthleteID: a.AthleteID, Seat: a.Seat}
	}
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.lineups.ReplaceSeats(ctx, tx, lineupID, seats)
	})
	if err != nil {
		return nil, fmt.Errorf("LineupService.ReseatLineup: %w", err)
	}
	return s.GetLineup(ctx, lineupID)
}

func (s *LineupService) DeleteLineup(ctx context.Context, lineupID uuid.UUID) error {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.lineups.DeleteLineup(ctx, tx, lineupID)
	})
	if err != nil {
		return fmt.Errorf("LineupService.DeleteLineup: %w", err)
	}
	return nil
}

func validateSeats(boat *rosterdb.Boat, assignments []SeatAssignment) error {
	rowers := 0
	seen := make(map[int]bool, len(assignments))
	athletes := make(map[uuid.UUID]bool, len(assignments))
	for _, a := range assignments {
		if seen[a.Seat] {
			return fmt.Errorf("seat %d assigned twice", a.Seat)
		}
		seen[a.Seat] = true
		if athletes[a.AthleteID] {
			return fmt.Errorf("athlete %s seated twice", a.AthleteID)
		}
		athletes[a.AthleteID] = true

		switch {
		case a.Seat == 0:
			if !boat.Coxed {
				return fmt.Errorf("boat %s has no cox seat", boat.Name)
			}
		case a.Seat < 0 || a.Seat > boat.Seats:
			return fmt.Errorf("seat %d out of range for a %d-seat boat", a.Seat, boat.Seats)
		default:
			rowers++
		}
	}
	if rowers != boat.Seats {
		return fmt.Errorf("boat %s needs %d rowers, got %d", boat.Name, boat.Seats, rowers)
	}
	return nil
}
