package gauntlethandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	gauntletservice "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/application"
	gauntletdomain "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/domain"
	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

func serve(t *testing.T, svc gauntletservice.Service, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	NewGauntletHandlers(svc, nil, nil).Routes().ServeHTTP(rec, req)
	return rec
}

func TestProcessMatchHandler(t *testing.T) {
	gauntletID := uuid.New()
	sideA := uuid.New()
	sideB := uuid.New()

	var got gauntletservice.ProcessMatchCommand
	svc := &fakeService{
		processMatchFunc: func(_ context.Context, cmd gauntletservice.ProcessMatchCommand) (*gauntletservice.ProcessMatchResult, error) {
			got = cmd
			return &gauntletservice.ProcessMatchResult{
				Match: &gauntletdb.Match{ID: uuid.New(), GauntletID: cmd.GauntletID},
				SideA: gauntletservice.SideUpdate{Outcome: gauntletdomain.OutcomeWin, Position: &gauntletdb.Position{Rank: 1}},
				SideB: gauntletservice.SideUpdate{Outcome: gauntletdomain.OutcomeLoss, Position: &gauntletdb.Position{Rank: 2}},
			}, nil
		},
	}

	rec := serve(t, svc, http.MethodPost, "/"+gauntletID.String()+"/matches", map[string]any{
		"side_a_lineup_id":  sideA,
		"side_b_lineup_id":  sideB,
		"sets":              3,
		"side_a_set_wins":   2,
		"side_a_set_losses": 1,
		"match_date":        time.Date(2026, 4, 18, 7, 0, 0, 0, time.UTC),
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if got.GauntletID != gauntletID || got.SideALineupID != sideA || got.SideBLineupID != sideB {
		t.Errorf("command ids not forwarded: %+v", got)
	}
	if got.Sets != 3 || got.SideASetWins != 2 || got.SideASetLosses != 1 {
		t.Errorf("set figures not forwarded: %+v", got)
	}
}

func TestProcessMatchHandlerValidation(t *testing.T) {
	gauntletID := uuid.New()
	sideA := uuid.New()
	sideB := uuid.New()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing lineups", map[string]any{"sets": 3, "side_a_set_wins": 2, "side_a_set_losses": 1}},
		{"self match", map[string]any{"side_a_lineup_id": sideA, "side_b_lineup_id": sideA, "sets": 3, "side_a_set_wins": 2, "side_a_set_losses": 1}},
		{"zero sets", map[string]any{"side_a_lineup_id": sideA, "side_b_lineup_id": sideB, "sets": 0}},
		{"negative set wins", map[string]any{"side_a_lineup_id": sideA, "side_b_lineup_id": sideB, "sets": 3, "side_a_set_wins": -1, "side_a_set_losses": 1}},
		{"figures exceed sets", map[string]any{"side_a_lineup_id": sideA, "side_b_lineup_id": sideB, "sets": 2, "side_a_set_wins": 2, "side_a_set_losses": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &fakeService{
				processMatchFunc: func(context.Context, gauntletservice.ProcessMatchCommand) (*gauntletservice.ProcessMatchResult, error) {
					called = true
					return nil, nil
				},
			}
			rec := serve(t, svc, http.MethodPost, "/"+gauntletID.String()+"/matches", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if called {
				t.Error("service called despite invalid request")
			}
		})
	}
}

func TestGetStandingsHandler(t *testing.T) {
	gauntletID := uuid.New()
	svc := &fakeService{
		getStandingsFunc: func(_ context.Context, id uuid.UUID) ([]gauntletdb.Position, error) {
			if id != gauntletID {
				t.Errorf("gauntlet id = %s, want %s", id, gauntletID)
			}
			return []gauntletdb.Position{
				{Rank: 1, LineupID: uuid.New(), Wins: 3},
				{Rank: 2, LineupID: uuid.New(), Losses: 2},
			}, nil
		},
	}

	rec := serve(t, svc, http.MethodGet, "/"+gauntletID.String()+"/standings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var standings []gauntletdb.Position
	if err := json.NewDecoder(rec.Body).Decode(&standings); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(standings) != 2 || standings[0].Rank != 1 {
		t.Errorf("unexpected standings: %+v", standings)
	}
}

func TestGetGauntletHandlerNotFound(t *testing.T) {
	svc := &fakeService{
		getGauntletFunc: func(context.Context, uuid.UUID) (*gauntletdb.Gauntlet, error) {
			return nil, fmt.Errorf("load: %w", gauntletdb.ErrNotFound)
		},
	}
	rec := serve(t, svc, http.MethodGet, "/"+uuid.New().String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetGauntletHandlerBadID(t *testing.T) {
	rec := serve(t, &fakeService{}, http.MethodGet, "/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSeedGauntletHandler(t *testing.T) {
	gauntletID := uuid.New()
	home := uuid.New()
	challengers := []uuid.UUID{uuid.New(), uuid.New()}

	svc := &fakeService{
		seedGauntletFunc: func(_ context.Context, id, homeID uuid.UUID, got []uuid.UUID) ([]gauntletdb.Position, error) {
			if id != gauntletID || homeID != home || len(got) != len(challengers) {
				t.Errorf("seed args = %s %s %v", id, homeID, got)
			}
			return []gauntletdb.Position{{Rank: 1}, {Rank: 2}, {Rank: 3}}, nil
		},
	}

	rec := serve(t, svc, http.MethodPost, "/"+gauntletID.String()+"/seed", map[string]any{
		"home_lineup_id": home,
		"challengers":    challengers,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestExportStandingsHandlerSetsContentType(t *testing.T) {
	svc := &fakeService{
		exportStandingsFunc: func(context.Context, uuid.UUID) ([]byte, error) {
			return []byte("PK\x03\x04"), nil
		},
	}
	rec := serve(t, svc, http.MethodGet, "/"+uuid.New().String()+"/standings/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", ct)
	}
}

func TestProcessMatchHandlerStatusMapping(t *testing.T) {
	gauntletID := uuid.New()
	body := map[string]any{
		"side_a_lineup_id":  uuid.New(),
		"side_b_lineup_id":  uuid.New(),
		"sets":              3,
		"side_a_set_wins":   2,
		"side_a_set_losses": 1,
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"gauntlet missing", fmt.Errorf("load gauntlet: %w", gauntletdb.ErrNotFound), http.StatusNotFound},
		{"not accepting matches", fmt.Errorf("gauntlet is completed: %w", gauntletservice.ErrNotAcceptingMatches), http.StatusConflict},
		{"storage failure", fmt.Errorf("persist match: connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{
				processMatchFunc: func(context.Context, gauntletservice.ProcessMatchCommand) (*gauntletservice.ProcessMatchResult, error) {
					return nil, tt.err
				},
			}
			rec := serve(t, svc, http.MethodPost, "/"+gauntletID.String()+"/matches", body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestTransitionGauntletHandlerStatusMapping(t *testing.T) {
	gauntletID := uuid.New()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid transition", fmt.Errorf("setup to completed: %w", gauntletservice.ErrInvalidTransition), http.StatusConflict},
		{"storage failure", fmt.Errorf("update status: connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{
				transitionGauntletFunc: func(context.Context, uuid.UUID, gauntletdomain.Status) (*gauntletdb.Gauntlet, error) {
					return nil, tt.err
				},
			}
			rec := serve(t, svc, http.MethodPost, "/"+gauntletID.String()+"/status", map[string]any{"status": "completed"})
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestSeedGauntletHandlerStatusMapping(t *testing.T) {
	gauntletID := uuid.New()
	body := map[string]any{
		"home_lineup_id": uuid.New(),
		"challengers":    []uuid.UUID{uuid.New()},
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"already seeded", fmt.Errorf("4 positions: %w", gauntletservice.ErrAlreadySeeded), http.StatusConflict},
		{"past setup", fmt.Errorf("gauntlet is active: %w", gauntletservice.ErrNotInSetup), http.StatusConflict},
		{"storage failure", fmt.Errorf("seed challenger: connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{
				seedGauntletFunc: func(context.Context, uuid.UUID, uuid.UUID, []uuid.UUID) ([]gauntletdb.Position, error) {
					return nil, tt.err
				},
			}
			rec := serve(t, svc, http.MethodPost, "/"+gauntletID.String()+"/seed", body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAdjustRankHandlerStatusMapping(t *testing.T) {
	gauntletID := uuid.New()
	lineupID := uuid.New()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"rank out of range", fmt.Errorf("rank 9 outside [1, 4]: %w", gauntletservice.ErrRankOutOfRange), http.StatusBadRequest},
		{"storage failure", fmt.Errorf("update position: connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{
				adjustRankFunc: func(context.Context, uuid.UUID, uuid.UUID, int) (*gauntletdb.Position, error) {
					return nil, tt.err
				},
			}
			rec := serve(t, svc, http.MethodPost, "/"+gauntletID.String()+"/lineups/"+lineupID.String()+"/rank", map[string]any{"rank": 9})
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestCoachGateCoversAdministrationRoutes(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}

	called := false
	svc := &fakeService{
		adjustRankFunc: func(context.Context, uuid.UUID, uuid.UUID, int) (*gauntletdb.Position, error) {
			called = true
			return &gauntletdb.Position{}, nil
		},
		getStandingsFunc: func(context.Context, uuid.UUID) ([]gauntletdb.Position, error) {
			return nil, nil
		},
	}
	router := NewGauntletHandlers(svc, nil, deny).Routes()

	gauntletID := uuid.New().String()
	gated := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/"},
		{http.MethodPost, "/" + gauntletID + "/status"},
		{http.MethodPost, "/" + gauntletID + "/seed"},
		{http.MethodPost, "/" + gauntletID + "/lineups/" + uuid.New().String() + "/rank"},
	}
	for _, route := range gated {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(route.method, route.target, bytes.NewBufferString("{}")))
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s status = %d, want %d", route.method, route.target, rec.Code, http.StatusForbidden)
		}
	}
	if called {
		t.Error("gated handler ran despite the middleware denying")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+gauntletID+"/standings", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("read route status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAdjustRankHandler(t *testing.T) {
	gauntletID := uuid.New()
	lineupID := uuid.New()
	svc := &fakeService{
		adjustRankFunc: func(_ context.Context, gID, lID uuid.UUID, rank int) (*gauntletdb.Position, error) {
			if gID != gauntletID || lID != lineupID || rank != 2 {
				t.Errorf("adjust args = %s %s %d", gID, lID, rank)
			}
			return &gauntletdb.Position{Rank: 2, LineupID: lID}, nil
		},
	}
	rec := serve(t, svc, http.MethodPost, "/"+gauntletID.String()+"/lineups/"+lineupID.String()+"/rank", map[string]any{"rank": 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}
