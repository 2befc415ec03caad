package gauntletdomain

// Outcome classifies one side's result in a match, derived from that
// side's own set figures.
type Outcome string

const (
	OutcomeWin  Outcome = "match_win"
	OutcomeLoss Outcome = "match_loss"
	OutcomeDraw Outcome = "match_draw"
)

// Reason tags a progression entry with why the rank moved.
type Reason string

const (
	ReasonMatchWin         Reason = "match_win"
	ReasonMatchLoss        Reason = "match_loss"
	ReasonMatchDraw        Reason = "match_draw"
	ReasonManualAdjustment Reason = "manual_adjustment"
	ReasonNewEntrant       Reason = "new_entrant"
)

// StreakKind is the kind of the current run of same-outcome matches.
type StreakKind string

const (
	StreakWin  StreakKind = "win"
	StreakLoss StreakKind = "loss"
	StreakDraw StreakKind = "draw"
	StreakNone StreakKind = "none"
)

// Streak is a run of consecutive same-kind outcomes.
type Streak struct {
	Kind   StreakKind
	Length int
}

// ResolveOutcome classifies a side's result from its own set wins and
// losses. Each side of a match is resolved independently; side B's
// figures are the complement of side A's.
func ResolveOutcome(setWins, setLosses int) Outcome {
	switch {
	case setWins > setLosses:
		return OutcomeWin
	case setWins < setLosses:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

// ProgressionReason maps an outcome to the reason recorded on the
// progression entry it produces.
func ProgressionReason(o Outcome) Reason {
	return Reason(o)
}

func (o Outcome) StreakKind() StreakKind {
	switch o {
	case OutcomeWin:
		return StreakWin
	case OutcomeLoss:
		return StreakLoss
	case OutcomeDraw:
		return StreakDraw
	default:
		return StreakNone
	}
}

// NextStreak extends the current streak when the new outcome matches its
// kind, otherwise starts a fresh streak of length 1.
func NextStreak(current Streak, o Outcome) Streak {
	kind := o.StreakKind()
	if current.Kind == kind {
		return Streak{Kind: kind, Length: current.Length + 1}
	}
	return Streak{Kind: kind, Length: 1}
}

// StepRank applies the adjacent-step rule: a win moves the lineup up one
// rank (floored at 1), a loss moves it down one rank (capped at the
// ladder's current position count), a draw leaves it in place.
func StepRank(currentRank, positionCount int, o Outcome) int {
	switch o {
	case OutcomeWin:
		if currentRank <= 1 {
			return 1
		}
		return currentRank - 1
	case OutcomeLoss:
		if currentRank >= positionCount {
			return currentRank
		}
		return currentRank + 1
	default:
		return currentRank
	}
}

// WinRate returns the win percentage for the given totals, 0 when no
// matches have been played.
func WinRate(wins, totalMatches int) float64 {
	if totalMatches == 0 {
		return 0
	}
	return float64(wins) / float64(totalMatches) * 100
}
