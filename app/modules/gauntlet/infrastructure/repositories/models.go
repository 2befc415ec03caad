package gauntletdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	gauntletdomain "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/domain"
)

// Gauntlet is one challenge-ladder competition for a boat class.
type Gauntlet struct {
	bun.BaseModel `bun:"table:gauntlets,alias:g"`

	ID           uuid.UUID             `bun:"id,pk,type:uuid"`
	Name         string                `bun:"name,notnull"`
	BoatClass    string                `bun:"boat_class,notnull"`
	Status       gauntletdomain.Status `bun:"status,notnull,default:'setup'"`
	HomeLineupID uuid.UUID             `bun:"home_lineup_id,type:uuid,notnull"`
	CreatedAt    time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time             `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*Gauntlet)(nil)

func (g *Gauntlet) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Position is one lineup's current rank and aggregate record within one
// gauntlet. Mutated only by the match result processor.
type Position struct {
	bun.BaseModel `bun:"table:gauntlet_positions,alias:gp"`

	ID           int64                     `bun:"id,pk,autoincrement"`
	GauntletID   uuid.UUID                 `bun:"gauntlet_id,type:uuid,notnull"`
	LineupID     uuid.UUID                 `bun:"lineup_id,type:uuid,notnull"`
	Rank         int                       `bun:"rank,notnull"`
	PreviousRank *int                      `bun:"previous_rank"`
	Wins         int                       `bun:"wins,notnull,default:0"`
	Losses       int                       `bun:"losses,notnull,default:0"`
	Draws        int                       `bun:"draws,notnull,default:0"`
	TotalMatches int                       `bun:"total_matches,notnull,default:0"`
	WinRate      float64                   `bun:"win_rate,notnull,default:0"`
	Points       int                       `bun:"points,notnull,default:0"`
	StreakKind   gauntletdomain.StreakKind `bun:"streak_kind,notnull,default:'none'"`
	StreakLength int                       `bun:"streak_length,notnull,default:0"`
	LastMatchAt  *time.Time                `bun:"last_match_at"`
	CreatedAt    time.Time                 `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time                 `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Streak returns the position's current streak as a domain value.
func (p *Position) Streak() gauntletdomain.Streak {
	return gauntletdomain.Streak{Kind: p.StreakKind, Length: p.StreakLength}
}

// Match is one immutable recorded contest between two lineups. Side B's
// set figures are the complement of side A's and are never stored.
type Match struct {
	bun.BaseModel `bun:"table:gauntlet_matches,alias:gm"`

	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	GauntletID     uuid.UUID `bun:"gauntlet_id,type:uuid,notnull"`
	SideALineupID  uuid.UUID `bun:"side_a_lineup_id,type:uuid,notnull"`
	SideBLineupID  uuid.UUID `bun:"side_b_lineup_id,type:uuid,notnull"`
	Sets           int       `bun:"sets,notnull"`
	SideASetWins   int       `bun:"side_a_set_wins,notnull"`
	SideASetLosses int       `bun:"side_a_set_losses,notnull"`
	MatchDate      time.Time `bun:"match_date,notnull"`
	Notes          string    `bun:"notes"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*Match)(nil)

func (m *Match) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// SideBSetWins returns side B's set wins, derived from side A's losses.
func (m *Match) SideBSetWins() int { return m.SideASetLosses }

// SideBSetLosses returns side B's set losses, derived from side A's wins.
func (m *Match) SideBSetLosses() int { return m.SideASetWins }

// Progression is one append-only audit entry for a rank change.
type Progression struct {
	bun.BaseModel `bun:"table:gauntlet_progressions,alias:gpr"`

	ID         int64                 `bun:"id,pk,autoincrement"`
	GauntletID uuid.UUID             `bun:"gauntlet_id,type:uuid,notnull"`
	LineupID   uuid.UUID             `bun:"lineup_id,type:uuid,notnull"`
	FromRank   int                   `bun:"from_rank,notnull"`
	ToRank     int                   `bun:"to_rank,notnull"`
	Delta      int                   `bun:"delta,notnull"`
	Reason     gauntletdomain.Reason `bun:"reason,notnull"`
	MatchID    *uuid.UUID            `bun:"match_id,type:uuid"`
	OccurredAt time.Time             `bun:"occurred_at,nullzero,notnull,default:current_timestamp"`
}
