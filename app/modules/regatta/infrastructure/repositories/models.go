package regattadb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Regatta is one external competition the club entered.
type Regatta struct {
	bun.BaseModel `bun:"table:regattas,alias:r"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	Venue     string    `bun:"venue"`
	StartDate time.Time `bun:"start_date,notnull"`
	EndDate   time.Time `bun:"end_date,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*Regatta)(nil)

func (r *Regatta) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RaceResult is one lineup's result in one regatta event. ElapsedMs is
// the raced time in milliseconds; zero when only the placement is known.
type RaceResult struct {
	bun.BaseModel `bun:"table:race_results,alias:rr"`

	ID        int64     `bun:"id,pk,autoincrement"`
	RegattaID uuid.UUID `bun:"regatta_id,type:uuid,notnull"`
	Event     string    `bun:"event,notnull"`
	LineupID  uuid.UUID `bun:"lineup_id,type:uuid,notnull"`
	Placement int       `bun:"placement,notnull"`
	ElapsedMs int64     `bun:"elapsed_ms,notnull,default:0"`
	Notes     string    `bun:"notes"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
