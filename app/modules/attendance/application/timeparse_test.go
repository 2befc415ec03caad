package attendanceservice

import (
	"testing"
	"time"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestParsePracticeTimeRFC3339(t *testing.T) {
	clock := fixedClock{t: time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)}

	got, err := ParsePracticeTime("2026-04-18T07:30:00Z", clock, time.UTC)
	if err != nil {
		t.Fatalf("ParsePracticeTime: %v", err)
	}
	want := time.Date(2026, 4, 18, 7, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsed = %v, want %v", got, want)
	}
}

func TestParsePracticeTimeNaturalLanguage(t *testing.T) {
	clock := fixedClock{t: time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)}

	got, err := ParsePracticeTime("tomorrow at 6am", clock, time.UTC)
	if err != nil {
		t.Fatalf("ParsePracticeTime: %v", err)
	}
	if got.Day() != 11 || got.Hour() != 6 {
		t.Errorf("parsed = %v, want April 11 06:00", got)
	}
}

func TestParsePracticeTimeUnrecognized(t *testing.T) {
	clock := fixedClock{t: time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)}

	if _, err := ParsePracticeTime("whenever the river behaves", clock, time.UTC); err == nil {
		t.Error("expected error for unrecognizable input")
	}
}
