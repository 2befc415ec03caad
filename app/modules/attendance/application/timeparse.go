package attendanceservice

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewClock returns the wall clock.
func NewClock() Clock { return realClock{} }

// ParsePracticeTime turns coach-typed scheduling text ("tomorrow 6am",
// "sat at 7:30") into a concrete time. RFC 3339 input is taken as-is.
func ParsePracticeTime(input string, clock Clock, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(input, clock.Now().In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse practice time %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize practice time %q", input)
	}
	return r.Time.In(loc), nil
}
