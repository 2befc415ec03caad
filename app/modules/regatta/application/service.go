package regattaservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	regattadb "github.com/stonecove-rowing/crewbot/app/modules/regatta/infrastructure/repositories"
)

// RegattaService is plain record keeping for external competitions.
type RegattaService struct {
	db     bun.IDB
	repo   regattadb.RegattaRepository
	logger *slog.Logger
}

// NewRegattaService creates a new RegattaService.
func NewRegattaService(db bun.IDB, repo regattadb.RegattaRepository, logger *slog.Logger) *RegattaService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegattaService{db: db, repo: repo, logger: logger}
}

// CreateRegattaCommand names a competition and its dates.
type CreateRegattaCommand struct {
	Name      string
	Venue     string
	StartDate time.Time
	EndDate   time.Time
}

func (s *RegattaService) CreateRegatta(ctx context.Context, cmd CreateRegattaCommand) (*regattadb.Regatta, error) {
	if cmd.EndDate.Before(cmd.StartDate) {
		return nil, fmt.Errorf("RegattaService.CreateRegatta: end date before start date")
	}
	regatta := &regattadb.Regatta{
		Name:      cmd.Name,
		Venue:     cmd.Venue,
		StartDate: cmd.StartDate,
		EndDate:   cmd.EndDate,
	}
	if err := s.repo.CreateRegatta(ctx, s.db, regatta); err != nil {
		return nil, fmt.Errorf("RegattaService.CreateRegatta: %w", err)
	}
	return regatta, nil
}

func (s *RegattaService) GetRegatta(ctx context.Context, regattaID uuid.UUID) (*regattadb.Regatta, error) {
	regatta, err := s.repo.GetRegatta(ctx, s.db, regattaID)
	if err != nil {
		return nil, fmt.Errorf("RegattaService.GetRegatta: %w", err)
	}
	return regatta, nil
}

func (s *RegattaService) ListRegattas(ctx context.Context) ([]regattadb.Regatta, error) {
	regattas, err := s.repo.ListRegattas(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("RegattaService.ListRegattas: %w", err)
	}
	return regattas, nil
}

// AddResultCommand records one lineup's result in one event.
type AddResultCommand struct {
	Event     string
	LineupID  uuid.UUID
	Placement int
	ElapsedMs int64
	Notes     string
}

func (s *RegattaService) AddResult(ctx context.Context, regattaID uuid.UUID, cmd AddResultCommand) (*regattadb.RaceResult, error) {
	if cmd.Placement < 1 {
		return nil, fmt.Errorf("RegattaService.AddResult: placement must be positive")
	}
	if _, err := s.repo.GetRegatta(ctx, s.db, regattaID); err != nil {
		return nil, fmt.Errorf("RegattaService.AddResult: %w", err)
	}

	result := &regattadb.RaceResult{
		RegattaID: regattaID,
		Event:     cmd.Event,
		LineupID:  cmd.LineupID,
		Placement: cmd.Placement,
		ElapsedMs: cmd.ElapsedMs,
		Notes:     cmd.Notes,
	}
	if err := s.repo.AddResult(ctx, s.db, result); err != nil {
		return nil, fmt.Errorf("RegattaService.AddResult: %w", err)
	}
	return result, nil
}

func (s *RegattaService) ListResults(ctx context.Context, regattaID uuid.UUID) ([]regattadb.RaceResult, error) {
	results, err := s.repo.ListResults(ctx, s.db, regattaID)
	if err != nil {
		return nil, fmt.Errorf("RegattaService.ListResults: %w", err)
	}
	return results, nil
}
