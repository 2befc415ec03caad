package rosterdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Side is an athlete's sweep-side preference.
type Side string

const (
	SidePort      Side = "port"
	SideStarboard Side = "starboard"
	SideBoth      Side = "both"
	SideScull     Side = "scull"
	SideCox       Side = "cox"
)

// Athlete is one rowing club member. PINHash is a bcrypt hash; the raw
// PIN is never stored.
type Athlete struct {
	bun.BaseModel `bun:"table:athletes,alias:a"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	Side      Side      `bun:"side,notnull,default:'both'"`
	Role      string    `bun:"role,notnull,default:'athlete'"`
	PINHash   string    `bun:"pin_hash" json:"-"`
	Active    bool      `bun:"active,notnull,default:true"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*Athlete)(nil)

func (a *Athlete) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Boat is one shell in the boathouse.
type Boat struct {
	bun.BaseModel `bun:"table:boats,alias:b"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	Class     string    `bun:"class,notnull"`
	Seats     int       `bun:"seats,notnull"`
	Coxed     bool      `bun:"coxed,notnull,default:false"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*Boat)(nil)

func (b *Boat) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
