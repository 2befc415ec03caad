package rosterservice

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	rosterdb "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/repositories"
)

type fakeAthleteRepo struct {
	athletes map[uuid.UUID]*rosterdb.Athlete
}

func newFakeAthleteRepo() *fakeAthleteRepo {
	return &fakeAthleteRepo{athletes: make(map[uuid.UUID]*rosterdb.Athlete)}
}

func (f *fakeAthleteRepo) CreateAthlete(_ context.Context, _ bun.IDB, athlete *rosterdb.Athlete) error {
	if athlete.ID == uuid.Nil {
		athlete.ID = uuid.New()
	}
	cp := *athlete
	f.athletes[athlete.ID] = &cp
	return nil
}

func (f *fakeAthleteRepo) GetAthlete(_ context.Context, _ bun.IDB, athleteID uuid.UUID) (*rosterdb.Athlete, error) {
	a, ok := f.athletes[athleteID]
	if !ok {
		return nil, rosterdb.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAthleteRepo) GetAthleteByName(_ context.Context, _ bun.IDB, name string) (*rosterdb.Athlete, error) {
	for _, a := range f.athletes {
		if a.Name == name {
			cp := *a
			return &cp, nil
		}
	}
	return nil, rosterdb.ErrNotFound
}

func (f *fakeAthleteRepo) ListAthletes(_ context.Context, _ bun.IDB, activeOnly bool) ([]rosterdb.Athlete, error) {
	var out []rosterdb.Athlete
	for _, a := range f.athletes {
		if activeOnly && !a.Active {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAthleteRepo) UpdateAthlete(_ context.Context, _ bun.IDB, athlete *rosterdb.Athlete) error {
	if _, ok := f.athletes[athlete.ID]; !ok {
		return rosterdb.ErrNotFound
	}
	cp := *athlete
	f.athletes[athlete.ID] = &cp
	return nil
}

func (f *fakeAthleteRepo) DeactivateAthlete(_ context.Context, _ bun.IDB, athleteID uuid.UUID) error {
	a, ok := f.athletes[athleteID]
	if !ok {
		return rosterdb.ErrNotFound
	}
	a.Active = false
	return nil
}

func newTestService() (*RosterService, *fakeAthleteRepo) {
	athletes := newFakeAthleteRepo()
	svc := NewRosterService(nil, athletes, nil, slog.New(slog.DiscardHandler))
	return svc, athletes
}

func TestCreateAthleteHashesPIN(t *testing.T) {
	svc, _ := newTestService()

	athlete, err := svc.CreateAthlete(context.Background(), CreateAthleteCommand{
		Name: "M. Ashworth",
		Side: rosterdb.SidePort,
		PIN:  "4812",
	})
	if err != nil {
		t.Fatalf("CreateAthlete: %v", err)
	}
	if athlete.PINHash == "4812" || athlete.PINHash == "" {
		t.Fatal("PIN stored without hashing")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(athlete.PINHash), []byte("4812")); err != nil {
		t.Errorf("stored hash does not match PIN: %v", err)
	}
}

func TestCreateAthleteDefaults(t *testing.T) {
	svc, _ := newTestService()

	athlete, err := svc.CreateAthlete(context.Background(), CreateAthleteCommand{Name: "S. Okafor"})
	if err != nil {
		t.Fatalf("CreateAthlete: %v", err)
	}
	if athlete.Side != rosterdb.SideBoth {
		t.Errorf("side = %s, want %s", athlete.Side, rosterdb.SideBoth)
	}
	if athlete.Role != "athlete" {
		t.Errorf("role = %q, want athlete", athlete.Role)
	}
	if !athlete.Active {
		t.Error("new athlete not active")
	}
	if athlete.PINHash != "" {
		t.Error("PIN hash set without a PIN")
	}
}

func TestSetPINRejectsShortPIN(t *testing.T) {
	svc, repo := newTestService()
	athlete := &rosterdb.Athlete{Name: "T. Lindqvist", Active: true}
	if err := repo.CreateAthlete(context.Background(), nil, athlete); err != nil {
		t.Fatal(err)
	}

	if err := svc.SetPIN(context.Background(), athlete.ID, "12"); err == nil {
		t.Error("SetPIN accepted a 2-character PIN")
	}
	if err := svc.SetPIN(context.Background(), athlete.ID, "1234"); err != nil {
		t.Errorf("SetPIN rejected a valid PIN: %v", err)
	}
}

func TestDeactivateAthlete(t *testing.T) {
	svc, repo := newTestService()
	athlete := &rosterdb.Athlete{Name: "R. Vann", Active: true}
	if err := repo.CreateAthlete(context.Background(), nil, athlete); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeactivateAthlete(context.Background(), athlete.ID); err != nil {
		t.Fatalf("DeactivateAthlete: %v", err)
	}
	got, err := svc.GetAthlete(context.Background(), athlete.ID)
	if err != nil {
		t.Fatalf("GetAthlete: %v", err)
	}
	if got.Active {
		t.Error("athlete still active after deactivation")
	}
}
