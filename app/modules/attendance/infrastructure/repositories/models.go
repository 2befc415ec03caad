package attendancedb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MarkStatus is an athlete's attendance state for one practice.
type MarkStatus string

const (
	MarkPresent MarkStatus = "present"
	MarkAbsent  MarkStatus = "absent"
	MarkExcused MarkStatus = "excused"
)

// Practice is one scheduled water or erg session.
type Practice struct {
	bun.BaseModel `bun:"table:practices,alias:p"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	Title       string    `bun:"title,notnull"`
	ScheduledAt time.Time `bun:"scheduled_at,notnull"`
	Location    string    `bun:"location"`
	Notes       string    `bun:"notes"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*Practice)(nil)

func (p *Practice) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Mark is one athlete's attendance record for one practice.
type Mark struct {
	bun.BaseModel `bun:"table:attendance_marks,alias:am"`

	ID         int64      `bun:"id,pk,autoincrement"`
	PracticeID uuid.UUID  `bun:"practice_id,type:uuid,notnull"`
	AthleteID  uuid.UUID  `bun:"athlete_id,type:uuid,notnull"`
	Status     MarkStatus `bun:"status,notnull"`
	MarkedAt   time.Time  `bun:"marked_at,nullzero,notnull,default:current_timestamp"`
}
