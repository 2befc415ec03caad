package lineupservice

import (
	"testing"

	"github.com/google/uuid"

	rosterdb "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/repositories"
)

func assignments(seats ...int) []SeatAssignment {
	out := make([]SeatAssignment, len(seats))
	for i, s := range seats {
		out[i] = SeatAssignment{AthleteID: uuid.New(), Seat: s}
	}
	return out
}

func TestValidateSeats(t *testing.T) {
	coxedFour := &rosterdb.Boat{Name: "Bowside Pride", Class: "4+", Seats: 4, Coxed: true}
	straightPair := &rosterdb.Boat{Name: "Little Gem", Class: "2-", Seats: 2, Coxed: false}

	tests := []struct {
		name    string
		boat    *rosterdb.Boat
		seats   []SeatAssignment
		wantErr bool
	}{
		{"full coxed four", coxedFour, assignments(0, 1, 2, 3, 4), false},
		{"coxed four missing cox is still full", coxedFour, assignments(1, 2, 3, 4), false},
		{"short crew", coxedFour, assignments(1, 2, 3), true},
		{"cox in an uncoxed boat", straightPair, assignments(0, 1, 2), true},
		{"pair", straightPair, assignments(1, 2), false},
		{"seat out of range", straightPair, assignments(1, 3), true},
		{"duplicate seat", straightPair, []SeatAssignment{
			{AthleteID: uuid.New(), Seat: 1},
			{AthleteID: uuid.New(), Seat: 1},
		}, true},
		{"athlete seated twice", func() *rosterdb.Boat { return straightPair }(), func() []SeatAssignment {
			id := uuid.New()
			return []SeatAssignment{{AthleteID: id, Seat: 1}, {AthleteID: id, Seat: 2}}
		}(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSeats(tt.boat, tt.seats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSeats() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
