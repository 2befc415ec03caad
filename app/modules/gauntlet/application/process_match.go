package gauntletservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	gauntletdomain "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/domain"
	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

// ProcessMatchCommand is the input for processing one completed match.
// Bounds (sets positive, set figures non-negative and summing to at most
// sets) are validated by the calling layer.
type ProcessMatchCommand struct {
	GauntletID     uuid.UUID
	SideALineupID  uuid.UUID
	SideBLineupID  uuid.UUID
	Sets           int
	SideASetWins   int
	SideASetLosses int
	MatchDate      time.Time
	Notes          string
}

// SideUpdate is one side's position snapshot after processing, with the
// outcome that produced it.
type SideUpdate struct {
	Outcome  gauntletdomain.Outcome
	Position *gauntletdb.Position
}

// ProcessMatchResult carries the persisted match and both updated
// position snapshots back to the caller.
type ProcessMatchResult struct {
	Match *gauntletdb.Match
	SideA SideUpdate
	SideB SideUpdate
}

// ProcessMatch is the sole entry point that advances ladder state. The
// match record, both position updates, and any progression entries are
// written in one transaction; any failure rolls the whole operation
// back. There is no dedup of resubmitted matches — a retried call
// processes a second, independent match.
func (s *GauntletService) ProcessMatch(ctx context.Context, cmd ProcessMatchCommand) (*ProcessMatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "GauntletService.ProcessMatch")
	defer span.End()

	start := time.Now()
	var result *ProcessMatchResult

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = s.processMatchInTx(ctx, tx, cmd)
		return txErr
	})
	s.metrics.ProcessDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.MatchesFailed.Inc()
		return nil, fmt.Errorf("GauntletService.ProcessMatch: %w", err)
	}

	s.metrics.MatchesProcessed.WithLabelValues(string(result.SideA.Outcome)).Inc()

	if err := s.publishMatchProcessed(MatchProcessedEvent{
		GauntletID:    cmd.GauntletID,
		MatchID:       result.Match.ID,
		SideALineupID: cmd.SideALineupID,
		SideBLineupID: cmd.SideBLineupID,
		SideAOutcome:  result.SideA.Outcome,
		SideBOutcome:  result.SideB.Outcome,
		SideARank:     result.SideA.Position.Rank,
		SideBRank:     result.SideB.Position.Rank,
		MatchDate:     cmd.MatchDate,
	}); err != nil {
		// The transaction already committed; a lost notification is not
		// worth failing the submission over.
		s.logger.WarnContext(ctx, "Failed to publish match processed event",
			slog.String("gauntlet_id", cmd.GauntletID.String()),
			slog.Any("error", err),
		)
	}

	s.logger.InfoContext(ctx, "Match processed",
		slog.String("gauntlet_id", cmd.GauntletID.String()),
		slog.String("match_id", result.Match.ID.String()),
		slog.String("side_a_outcome", string(result.SideA.Outcome)),
		slog.Int("side_a_rank", result.SideA.Position.Rank),
		slog.Int("side_b_rank", result.SideB.Position.Rank),
	)

	return result, nil
}

func (s *GauntletService) processMatchInTx(ctx context.Context, tx bun.Tx, cmd ProcessMatchCommand) (*ProcessMatchResult, error) {
	// Serialize all match processing for this gauntlet. Without the lock,
	// two concurrent submissions can both read stale ranks or race the
	// bootstrap into ErrDuplicatePosition.
	if err := s.positions.AcquireGauntletLock(ctx, tx, cmd.GauntletID); err != nil {
		return nil, fmt.Errorf("acquire gauntlet lock: %w", err)
	}

	gauntlet, err := s.gauntlets.GetGauntlet(ctx, tx, cmd.GauntletID)
	if err != nil {
		return nil, fmt.Errorf("load gauntlet: %w", err)
	}
	if !gauntletdomain.AcceptsMatches(gauntlet.Status) {
		return nil, fmt.Errorf("gauntlet %s is %s: %w", gauntlet.ID, gauntlet.Status, ErrNotAcceptingMatches)
	}

	match := &gauntletdb.Match{
		GauntletID:     cmd.GauntletID,
		SideALineupID:  cmd.SideALineupID,
		SideBLineupID:  cmd.SideBLineupID,
		Sets:           cmd.Sets,
		SideASetWins:   cmd.SideASetWins,
		SideASetLosses: cmd.SideASetLosses,
		MatchDate:      cmd.MatchDate,
		Notes:          cmd.Notes,
	}
	if err := s.matches.CreateMatch(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("persist match: %w", err)
	}

	sideA, err := s.ensurePosition(ctx, tx, cmd.GauntletID, cmd.SideALineupID)
	if err != nil {
		return nil, fmt.Errorf("ensure side A position: %w", err)
	}
	sideB, err := s.ensurePosition(ctx, tx, cmd.GauntletID, cmd.SideBLineupID)
	if err != nil {
		return nil, fmt.Errorf("ensure side B position: %w", err)
	}

	// The bottom-rank clamp uses the ladder size including any position
	// bootstrapped above.
	positionCount, err := s.positions.CountPositions(ctx, tx, cmd.GauntletID)
	if err != nil {
		return nil, fmt.Errorf("count positions: %w", err)
	}

	// Each side's outcome is derived independently from its own set
	// figures; side B's are the complement of side A's.
	outcomeA := gauntletdomain.ResolveOutcome(cmd.SideASetWins, cmd.SideASetLosses)
	outcomeB := gauntletdomain.ResolveOutcome(match.SideBSetWins(), match.SideBSetLosses())

	if err := s.applySideResult(ctx, tx, sideA, outcomeA, cmd.SideASetWins, positionCount, match); err != nil {
		return nil, fmt.Errorf("apply side A result: %w", err)
	}
	if err := s.applySideResult(ctx, tx, sideB, outcomeB, match.SideBSetWins(), positionCount, match); err != nil {
		return nil, fmt.Errorf("apply side B result: %w", err)
	}

	return &ProcessMatchResult{
		Match: match,
		SideA: SideUpdate{Outcome: outcomeA, Position: sideA},
		SideB: SideUpdate{Outcome: outcomeB, Position: sideB},
	}, nil
}

// applySideResult mutates one side's position for the given outcome:
// counters, points (one per set won this match), streak, the
// adjacent-step rank move, and a progression entry when the rank
// actually changed.
func (s *GauntletService) applySideResult(
	ctx context.Context,
	tx bun.Tx,
	position *gauntletdb.Position,
	outcome gauntletdomain.Outcome,
	setWins int,
	positionCount int,
	match *gauntletdb.Match,
) error {
	switch outcome {
	case gauntletdomain.OutcomeWin:
		position.Wins++
	case gauntletdomain.OutcomeLoss:
		position.Losses++
	case gauntletdomain.OutcomeDraw:
		position.Draws++
	}
	position.TotalMatches++
	position.WinRate = gauntletdomain.WinRate(position.Wins, position.TotalMatches)
	position.Points += setWins

	streak := gauntletdomain.NextStreak(position.Streak(), outcome)
	position.StreakKind = streak.Kind
	position.StreakLength = streak.Length

	oldRank := position.Rank
	newRank := gauntletdomain.StepRank(oldRank, positionCount, outcome)
	if newRank != oldRank {
		previous := oldRank
		position.PreviousRank = &previous
		position.Rank = newRank

		matchID := match.ID
		if err := s.progressions.InsertProgression(ctx, tx, &gauntletdb.Progression{
			GauntletID: position.GauntletID,
			LineupID:   position.LineupID,
			FromRank:   oldRank,
			ToRank:     newRank,
			Delta:      newRank - oldRank,
			Reason:     gauntletdomain.ProgressionReason(outcome),
			MatchID:    &matchID,
			OccurredAt: match.MatchDate,
		}); err != nil {
			return fmt.Errorf("append progression: %w", err)
		}
		s.metrics.RankChanges.Inc()
	}

	matchDate := match.MatchDate
	position.LastMatchAt = &matchDate

	if err := s.positions.UpdatePosition(ctx, tx, position); err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	return nil
}
