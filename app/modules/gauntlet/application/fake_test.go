package gauntletservice

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	gauntletdomain "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/domain"
	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

// fakeDB satisfies DB without a database; RunInTx simply invokes the
// callback with a zero tx, since the fakes below ignore the db argument.
type fakeDB struct {
	bun.IDB
	txErr error
}

func (f *fakeDB) RunInTx(ctx context.Context, _ *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	if f.txErr != nil {
		return f.txErr
	}
	return fn(ctx, bun.Tx{})
}

type fakeGauntletRepo struct {
	gauntlets map[uuid.UUID]*gauntletdb.Gauntlet
	createErr error
	getErr    error
	updateErr error
}

func newFakeGauntletRepo() *fakeGauntletRepo {
	return &fakeGauntletRepo{gauntlets: make(map[uuid.UUID]*gauntletdb.Gauntlet)}
}

func (f *fakeGauntletRepo) CreateGauntlet(_ context.Context, _ bun.IDB, gauntlet *gauntletdb.Gauntlet) error {
	if f.createErr != nil {
		return f.createErr
	}
	if gauntlet.ID == uuid.Nil {
		gauntlet.ID = uuid.New()
	}
	cp := *gauntlet
	f.gauntlets[gauntlet.ID] = &cp
	return nil
}

func (f *fakeGauntletRepo) GetGauntlet(_ context.Context, _ bun.IDB, gauntletID uuid.UUID) (*gauntletdb.Gauntlet, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	g, ok := f.gauntlets[gauntletID]
	if !ok {
		return nil, gauntletdb.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGauntletRepo) ListGauntlets(_ context.Context, _ bun.IDB) ([]gauntletdb.Gauntlet, error) {
	var out []gauntletdb.Gauntlet
	for _, g := range f.gauntlets {
		out = append(out, *g)
	}
	return out, nil
}

func (f *fakeGauntletRepo) UpdateStatus(_ context.Context, _ bun.IDB, gauntletID uuid.UUID, status gauntletdomain.Status) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	g, ok := f.gauntlets[gauntletID]
	if !ok {
		return gauntletdb.ErrNotFound
	}
	g.Status = status
	return nil
}

type fakePositionRepo struct {
	positions []*gauntletdb.Position
	nextID    int64
	locks     int

	createErr error
	getErr    error
	updateErr error
	lockErr   error
}

func (f *fakePositionRepo) GetPosition(_ context.Context, _ bun.IDB, gauntletID, lineupID uuid.UUID) (*gauntletdb.Position, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.positions {
		if p.GauntletID == gauntletID && p.LineupID == lineupID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePositionRepo) CreatePosition(_ context.Context, _ bun.IDB, position *gauntletdb.Position) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, p := range f.positions {
		if p.GauntletID == position.GauntletID && p.LineupID == position.LineupID {
			return gauntletdb.ErrDuplicatePosition
		}
	}
	f.nextID++
	position.ID = f.nextID
	cp := *position
	f.positions = append(f.positions, &cp)
	return nil
}

func (f *fakePositionRepo) MaxRank(_ context.Context, _ bun.IDB, gauntletID uuid.UUID) (int, error) {
	maxRank := 0
	for _, p := range f.positions {
		if p.GauntletID == gauntletID && p.Rank > maxRank {
			maxRank = p.Rank
		}
	}
	return maxRank, nil
}

func (f *fakePositionRepo) CountPositions(_ context.Context, _ bun.IDB, gauntletID uuid.UUID) (int, error) {
	count := 0
	for _, p := range f.positions {
		if p.GauntletID == gauntletID {
			count++
		}
	}
	return count, nil
}

func (f *fakePositionRepo) UpdatePosition(_ context.Context, _ bun.IDB, position *gauntletdb.Position) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i, p := range f.positions {
		if p.ID == position.ID {
			cp := *position
			f.positions[i] = &cp
			return nil
		}
	}
	return gauntletdb.ErrPositionNotFound
}

func (f *fakePositionRepo) ListPositions(_ context.Context, _ bun.IDB, gauntletID uuid.UUID) ([]gauntletdb.Position, error) {
	var out []gauntletdb.Position
	for _, p := range f.positions {
		if p.GauntletID == gauntletID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (f *fakePositionRepo) AcquireGauntletLock(_ context.Context, _ bun.IDB, _ uuid.UUID) error {
	if f.lockErr != nil {
		return f.lockErr
	}
	f.locks++
	return nil
}

type fakeMatchRepo struct {
	matches   []*gauntletdb.Match
	createErr error
}

func (f *fakeMatchRepo) CreateMatch(_ context.Context, _ bun.IDB, match *gauntletdb.Match) error {
	if f.createErr != nil {
		return f.createErr
	}
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	cp := *match
	f.matches = append(f.matches, &cp)
	return nil
}

func (f *fakeMatchRepo) GetMatch(_ context.Context, _ bun.IDB, matchID uuid.UUID) (*gauntletdb.Match, error) {
	for _, m := range f.matches {
		if m.ID == matchID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gauntletdb.ErrNotFound
}

func (f *fakeMatchRepo) ListMatchesForGauntlet(_ context.Context, _ bun.IDB, gauntletID uuid.UUID, limit int) ([]gauntletdb.Match, error) {
	var out []gauntletdb.Match
	for _, m := range f.matches {
		if m.GauntletID == gauntletID {
			out = append(out, *m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMatchRepo) ListMatchesForLineup(_ context.Context, _ bun.IDB, gauntletID, lineupID uuid.UUID, limit int) ([]gauntletdb.Match, error) {
	var out []gauntletdb.Match
	for _, m := range f.matches {
		if m.GauntletID == gauntletID && (m.SideALineupID == lineupID || m.SideBLineupID == lineupID) {
			out = append(out, *m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeProgressionRepo struct {
	entries   []gauntletdb.Progression
	insertErr error
}

func (f *fakeProgressionRepo) InsertProgression(_ context.Context, _ bun.IDB, entry *gauntletdb.Progression) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeProgressionRepo) ListProgressionsForGauntlet(_ context.Context, _ bun.IDB, gauntletID uuid.UUID, limit int) ([]gauntletdb.Progression, error) {
	var out []gauntletdb.Progression
	for _, e := range f.entries {
		if e.GauntletID == gauntletID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProgressionRepo) ListProgressionsForLineup(_ context.Context, _ bun.IDB, gauntletID, lineupID uuid.UUID, limit int) ([]gauntletdb.Progression, error) {
	var out []gauntletdb.Progression
	for _, e := range f.entries {
		if e.GauntletID == gauntletID && e.LineupID == lineupID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// testEnv bundles a service wired to in-memory fakes.
type testEnv struct {
	service      *GauntletService
	gauntlets    *fakeGauntletRepo
	positions    *fakePositionRepo
	matches      *fakeMatchRepo
	progressions *fakeProgressionRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		gauntlets:    newFakeGauntletRepo(),
		positions:    &fakePositionRepo{},
		matches:      &fakeMatchRepo{},
		progressions: &fakeProgressionRepo{},
	}
	env.service = NewGauntletService(
		&fakeDB{},
		env.gauntlets,
		env.positions,
		env.matches,
		env.progressions,
		nil,
		slog.New(slog.DiscardHandler),
		NewMetrics(nil),
		nil,
	)
	return env
}
