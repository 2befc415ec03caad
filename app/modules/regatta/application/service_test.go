package regattaservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	regattadb "github.com/stonecove-rowing/crewbot/app/modules/regatta/infrastructure/repositories"
)

type fakeRegattaRepo struct {
	regattas map[uuid.UUID]*regattadb.Regatta
	results  []regattadb.RaceResult
	nextID   int64

	createErr error
	addErr    error
}

func newFakeRegattaRepo() *fakeRegattaRepo {
	return &fakeRegattaRepo{regattas: make(map[uuid.UUID]*regattadb.Regatta)}
}

func (f *fakeRegattaRepo) CreateRegatta(_ context.Context, _ bun.IDB, regatta *regattadb.Regatta) error {
	if f.createErr != nil {
		return f.createErr
	}
	if regatta.ID == uuid.Nil {
		regatta.ID = uuid.New()
	}
	f.regattas[regatta.ID] = regatta
	return nil
}

func (f *fakeRegattaRepo) GetRegatta(_ context.Context, _ bun.IDB, regattaID uuid.UUID) (*regattadb.Regatta, error) {
	regatta, ok := f.regattas[regattaID]
	if !ok {
		return nil, regattadb.ErrNotFound
	}
	return regatta, nil
}

func (f *fakeRegattaRepo) ListRegattas(_ context.Context, _ bun.IDB) ([]regattadb.Regatta, error) {
	var out []regattadb.Regatta
	for _, r := range f.regattas {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRegattaRepo) AddResult(_ context.Context, _ bun.IDB, result *regattadb.RaceResult) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.nextID++
	result.ID = f.nextID
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeRegattaRepo) ListResults(_ context.Context, _ bun.IDB, regattaID uuid.UUID) ([]regattadb.RaceResult, error) {
	var out []regattadb.RaceResult
	for _, r := range f.results {
		if r.RegattaID == regattaID {
			out = append(out, r)
		}
	}
	return out, nil
}

func randomRegattaCommand() CreateRegattaCommand {
	start := gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 6, 0))
	return CreateRegattaCommand{
		Name:      gofakeit.City() + " Sprints",
		Venue:     gofakeit.City(),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
	}
}

func TestCreateRegatta(t *testing.T) {
	repo := newFakeRegattaRepo()
	svc := NewRegattaService(nil, repo, slog.New(slog.DiscardHandler))

	regatta, err := svc.CreateRegatta(context.Background(), randomRegattaCommand())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, regatta.ID)
	assert.Len(t, repo.regattas, 1)
}

func TestCreateRegattaRejectsReversedDates(t *testing.T) {
	svc := NewRegattaService(nil, newFakeRegattaRepo(), slog.New(slog.DiscardHandler))

	cmd := randomRegattaCommand()
	cmd.EndDate = cmd.StartDate.AddDate(0, 0, -2)
	_, err := svc.CreateRegatta(context.Background(), cmd)
	assert.Error(t, err)
}

func TestAddResult(t *testing.T) {
	repo := newFakeRegattaRepo()
	svc := NewRegattaService(nil, repo, slog.New(slog.DiscardHandler))

	regatta, err := svc.CreateRegatta(context.Background(), randomRegattaCommand())
	require.NoError(t, err)

	result, err := svc.AddResult(context.Background(), regatta.ID, AddResultCommand{
		Event:     "Men's 4+",
		LineupID:  uuid.New(),
		Placement: 2,
		ElapsedMs: 6*60*1000 + 42_300,
	})
	require.NoError(t, err)
	assert.Equal(t, regatta.ID, result.RegattaID)

	results, err := svc.ListResults(context.Background(), regatta.ID)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestAddResultValidation(t *testing.T) {
	repo := newFakeRegattaRepo()
	svc := NewRegattaService(nil, repo, slog.New(slog.DiscardHandler))

	regatta, err := svc.CreateRegatta(context.Background(), randomRegattaCommand())
	require.NoError(t, err)

	t.Run("placement below one", func(t *testing.T) {
		_, err := svc.AddResult(context.Background(), regatta.ID, AddResultCommand{
			Event:     "Women's 2x",
			LineupID:  uuid.New(),
			Placement: 0,
		})
		assert.Error(t, err)
	})

	t.Run("unknown regatta", func(t *testing.T) {
		_, err := svc.AddResult(context.Background(), uuid.New(), AddResultCommand{
			Event:     "Women's 2x",
			LineupID:  uuid.New(),
			Placement: 1,
		})
		assert.True(t, errors.Is(err, regattadb.ErrNotFound))
	})
}
