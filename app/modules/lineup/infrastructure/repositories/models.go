package lineupdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Lineup is a named crew: a boat plus seated athletes. The gauntlet
// engine references lineups by ID only.
type Lineup struct {
	bun.BaseModel `bun:"table:lineups,alias:l"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	BoatID    uuid.UUID `bun:"boat_id,type:uuid,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	Seats []*LineupSeat `bun:"rel:has-many,join:id=lineup_id"`
}

var _ bun.BeforeInsertHook = (*Lineup)(nil)

func (l *Lineup) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LineupSeat assigns one athlete to one seat. Seat 0 is the coxswain.
type LineupSeat struct {
	bun.BaseModel `bun:"table:lineup_seats,alias:ls"`

	ID        int64     `bun:"id,pk,autoincrement"`
	LineupID  uuid.UUID `bun:"lineup_id,type:uuid,notnull"`
	AthleteID uuid.UUID `bun:"athlete_id,type:uuid,notnull"`
	Seat      int       `bun:"seat,notnull"`
}
