package gauntlethandlers

import (
	"context"

	"github.com/google/uuid"

	gauntletservice "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/application"
	gauntletdomain "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/domain"
	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

// fakeService implements gauntletservice.Service with overridable funcs;
// unset funcs return zero values.
type fakeService struct {
	createGauntletFunc     func(ctx context.Context, cmd gauntletservice.CreateGauntletCommand) (*gauntletdb.Gauntlet, error)
	getGauntletFunc        func(ctx context.Context, gauntletID uuid.UUID) (*gauntletdb.Gauntlet, error)
	listGauntletsFunc      func(ctx context.Context) ([]gauntletdb.Gauntlet, error)
	transitionGauntletFunc func(ctx context.Context, gauntletID uuid.UUID, to gauntletdomain.Status) (*gauntletdb.Gauntlet, error)
	seedGauntletFunc       func(ctx context.Context, gauntletID, homeLineupID uuid.UUID, challengers []uuid.UUID) ([]gauntletdb.Position, error)
	processMatchFunc       func(ctx context.Context, cmd gauntletservice.ProcessMatchCommand) (*gauntletservice.ProcessMatchResult, error)
	adjustRankFunc         func(ctx context.Context, gauntletID, lineupID uuid.UUID, newRank int) (*gauntletdb.Position, error)
	getStandingsFunc       func(ctx context.Context, gauntletID uuid.UUID) ([]gauntletdb.Position, error)
	getLineupPositionFunc  func(ctx context.Context, gauntletID, lineupID uuid.UUID) (*gauntletdb.Position, error)
	getProgressionsFunc    func(ctx context.Context, gauntletID uuid.UUID, limit int) ([]gauntletdb.Progression, error)
	getLineupProgFunc      func(ctx context.Context, gauntletID, lineupID uuid.UUID, limit int) ([]gauntletdb.Progression, error)
	getMatchFunc           func(ctx context.Context, matchID uuid.UUID) (*gauntletdb.Match, error)
	listMatchesFunc        func(ctx context.Context, gauntletID uuid.UUID, limit int) ([]gauntletdb.Match, error)
	listLineupMatchesFunc  func(ctx context.Context, gauntletID, lineupID uuid.UUID, limit int) ([]gauntletdb.Match, error)
	exportStandingsFunc    func(ctx context.Context, gauntletID uuid.UUID) ([]byte, error)
}

var _ gauntletservice.Service = (*fakeService)(nil)

func (f *fakeService) CreateGauntlet(ctx context.Context, cmd gauntletservice.CreateGauntletCommand) (*gauntletdb.Gauntlet, error) {
	if f.createGauntletFunc != nil {
		return f.createGauntletFunc(ctx, cmd)
	}
	return nil, nil
}

func (f *fakeService) GetGauntlet(ctx context.Context, gauntletID uuid.UUID) (*gauntletdb.Gauntlet, error) {
	if f.getGauntletFunc != nil {
		return f.getGauntletFunc(ctx, gauntletID)
	}
	return nil, nil
}

func (f *fakeService) ListGauntlets(ctx context.Context) ([]gauntletdb.Gauntlet, error) {
	if f.listGauntletsFunc != nil {
		return f.listGauntletsFunc(ctx)
	}
	return nil, nil
}

func (f *fakeService) TransitionGauntlet(ctx context.Context, gauntletID uuid.UUID, to gauntletdomain.Status) (*gauntletdb.Gauntlet, error) {
	if f.transitionGauntletFunc != nil {
		return f.transitionGauntletFunc(ctx, gauntletID, to)
	}
	return nil, nil
}

func (f *fakeService) SeedGauntlet(ctx context.Context, gauntletID, homeLineupID uuid.UUID, challengers []uuid.UUID) ([]gauntletdb.Position, error) {
	if f.seedGauntletFunc != nil {
		return f.seedGauntletFunc(ctx, gauntletID, homeLineupID, challengers)
	}
	return nil, nil
}

func (f *fakeService) ProcessMatch(ctx context.Context, cmd gauntletservice.ProcessMatchCommand) (*gauntletservice.ProcessMatchResult, error) {
	if f.processMatchFunc != nil {
		return f.processMatchFunc(ctx, cmd)
	}
	return nil, nil
}

func (f *fakeService) AdjustRank(ctx context.Context, gauntletID, lineupID uuid.UUID, newRank int) (*gauntletdb.Position, error) {
	if f.adjustRankFunc != nil {
		return f.adjustRankFunc(ctx, gauntletID, lineupID, newRank)
	}
	return nil, nil
}

func (f *fakeService) GetStandings(ctx context.Context, gauntletID uuid.UUID) ([]gauntletdb.Position, error) {
	if f.getStandingsFunc != nil {
		return f.getStandingsFunc(ctx, gauntletID)
	}
	return nil, nil
}

func (f *fakeService) GetLineupPosition(ctx context.Context, gauntletID, lineupID uuid.UUID) (*gauntletdb.Position, error) {
	if f.getLineupPositionFunc != nil {
		return f.getLineupPositionFunc(ctx, gauntletID, lineupID)
	}
	return nil, nil
}

func (f *fakeService) GetProgressionHistory(ctx context.Context, gauntletID uuid.UUID, limit int) ([]gauntletdb.Progression, error) {
	if f.getProgressionsFunc != nil {
		return f.getProgressionsFunc(ctx, gauntletID, limit)
	}
	return nil, nil
}

func (f *fakeService) GetLineupProgression(ctx context.Context, gauntletID, lineupID uuid.UUID, limit int) ([]gauntletdb.Progression, error) {
	if f.getLineupProgFunc != nil {
		return f.getLineupProgFunc(ctx, gauntletID, lineupID, limit)
	}
	return nil, nil
}

func (f *fakeService) GetMatch(ctx context.Context, matchID uuid.UUID) (*gauntletdb.Match, error) {
	if f.getMatchFunc != nil {
		return f.getMatchFunc(ctx, matchID)
	}
	return nil, nil
}

func (f *fakeService) ListMatches(ctx context.Context, gauntletID uuid.UUID, limit int) ([]gauntletdb.Match, error) {
	if f.listMatchesFunc != nil {
		return f.listMatchesFunc(ctx, gauntletID, limit)
	}
	return nil, nil
}

func (f *fakeService) ListLineupMatches(ctx context.Context, gauntletID, lineupID uuid.UUID, limit int) ([]gauntletdb.Match, error) {
	if f.listLineupMatchesFunc != nil {
		return f.listLineupMatchesFunc(ctx, gauntletID, lineupID, limit)
	}
	return nil, nil
}

func (f *fakeService) ExportStandings(ctx context.Context, gauntletID uuid.UUID) ([]byte, error) {
	if f.exportStandingsFunc != nil {
		return f.exportStandingsFunc(ctx, gauntletID)
	}
	return nil, nil
}
