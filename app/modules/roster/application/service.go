package rosterservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	rosterdb "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/repositories"
)

// RosterService owns athletes and boats.
type RosterService struct {
	db       bun.IDB
	athletes rosterdb.AthleteRepository
	boats    rosterdb.BoatRepository
	logger   *slog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(db bun.IDB, athletes rosterdb.AthleteRepository, boats rosterdb.BoatRepository, logger *slog.Logger) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterService{db: db, athletes: athletes, boats: boats, logger: logger}
}

// CreateAthleteCommand carries a new athlete's details. PIN is hashed
// before storage and optional; an athlete without one cannot log in.
type CreateAthleteCommand struct {
	Name string
	Side rosterdb.Side
	Role string
	PIN  string
}

func (s *RosterService) CreateAthlete(ctx context.Context, cmd CreateAthleteCommand) (*rosterdb.Athlete, error) {
	athlete := &rosterdb.Athlete{
		Name:   cmd.Name,
		Side:   cmd.Side,
		Role:   cmd.Role,
		Active: true,
	}
	if athlete.Side == "" {
		athlete.Side = rosterdb.SideBoth
	}
	if athlete.Role == "" {
		athlete.Role = "athlete"
	}
	if cmd.PIN != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cmd.PIN), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("RosterService.CreateAthlete: %w", err)
		}
		athlete.PINHash = string(hash)
	}

	if err := s.athletes.CreateAthlete(ctx, s.db, athlete); err != nil {
		return nil, fmt.Errorf("RosterService.CreateAthlete: %w", err)
	}

	s.logger.InfoContext(ctx, "Athlete created",
		slog.String("athlete_id", athlete.ID.String()),
		slog.String("name", athlete.Name),
	)
	return athlete, nil
}

func (s *RosterService) GetAthlete(ctx context.Context, athleteID uuid.UUID) (*rosterdb.Athlete, error) {
	athlete, err := s.athletes.GetAthlete(ctx, s.db, athleteID)
	if err != nil {
		return nil, fmt.Errorf("RosterService.GetAthlete: %w", err)
	}
	return athlete, nil
}

func (s *RosterService) ListAthletes(ctx context.Context, activeOnly bool) ([]rosterdb.Athlete, error) {
	athletes, err := s.athletes.ListAthletes(ctx, s.db, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("RosterService.ListAthletes: %w", err)
	}
	return athletes, nil
}

// UpdateAthleteCommand carries the mutable athlete fields.
type UpdateAthleteCommand struct {
	Name string
	Side rosterdb.Side
	Role string
}

func (s *RosterService) UpdateAthlete(ctx context.Context, athleteID uuid.UUID, cmd UpdateAthleteCommand) (*rosterdb.Athlete, error) {
	athlete, err := s.athletes.GetAthlete(ctx, s.db, athleteID)
	if err != nil {
		return nil, fmt.Errorf("RosterService.UpdateAthlete: %w", err)
	}
	if cmd.Name != "" {
		athlete.Name = cmd.Name
	}
	if cmd.Side != "" {
		athlete.Side = cmd.Side
	}
	if cmd.Role != "" {
		athlete.Role = cmd.Role
	}
	if err := s.athletes.UpdateAthlete(ctx, s.db, athlete); err != nil {
		return nil, fmt.Errorf("RosterService.UpdateAthlete: %w", err)
	}
	return athlete, nil
}

// SetPIN replaces an athlete's login PIN.
func (s *RosterService) SetPIN(ctx context.Context, athleteID uuid.UUID, pin string) error {
	if len(pin) < 4 {
		return fmt.Errorf("RosterService.SetPIN: pin must be at least 4 characters")
	}
	athlete, err := s.athletes.GetAthlete(ctx, s.db, athleteID)
	if err != nil {
		return fmt.Errorf("RosterService.SetPIN: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("RosterService.SetPIN: %w", err)
	}
	athlete.PINHash = string(hash)
	if err := s.athletes.UpdateAthlete(ctx, s.db, athlete); err != nil {
		return fmt.Errorf("RosterService.SetPIN: %w", err)
	}

	s.logger.InfoContext(ctx, "Athlete PIN updated", slog.String("athlete_id", athleteID.String()))
	return nil
}

func (s *RosterService) DeactivateAthlete(ctx context.Context, athleteID uuid.UUID) error {
	if err := s.athletes.DeactivateAthlete(ctx, s.db, athleteID); err != nil {
		return fmt.Errorf("RosterService.DeactivateAthlete: %w", err)
	}
	return nil
}

// CreateBoatCommand carries a new shell's details.
type CreateBoatCommand struct {
	Name  string
	Class string
	Seats int
	Coxed bool
}

func (s *RosterService) CreateBoat(ctx context.Context, cmd CreateBoatCommand) (*rosterdb.Boat, error) {
	if cmd.Seats <= 0 {
		return nil, fmt.Errorf("RosterService.CreateBoat: seats must be positive")
	}
	boat := &rosterdb.Boat{
		Name:  cmd.Name,
		Class: cmd.Class,
		Seats: cmd.Seats,
		Coxed: cmd.Coxed,
	}
	if err := s.boats.CreateBoat(ctx, s.db, boat); err != nil {
		return nil, fmt.Errorf("RosterService.CreateBoat: %w", err)
	}
	return boat, nil
}

func (s *RosterService) GetBoat(ctx context.Context, boatID uuid.UUID) (*rosterdb.Boat, error) {
	boat, err := s.boats.GetBoat(ctx, s.db, boatID)
	if err != nil {
		return nil, fmt.Errorf("RosterService.GetBoat: %w", err)
	}
	return boat, nil
}

func (s *RosterService) ListBoats(ctx context.Context) ([]rosterdb.Boat, error) {
	boats, err := s.boats.ListBoats(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("RosterService.ListBoats: %w", err)
	}
	return boats, nil
}

func (s *RosterService) DeleteBoat(ctx context.Context, boatID uuid.UUID) error {
	if err := s.boats.DeleteBoat(ctx, s.db, boatID); err != nil {
		return fmt.Errorf("RosterService.DeleteBoat: %w", err)
	}
	return nil
}
