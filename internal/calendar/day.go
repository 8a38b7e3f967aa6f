package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

// DayFormat is the canonical wire format for calendar days.
const DayFormat = "2006-01-02"

// Day identifies one local calendar day. It is the single representation of
// day boundaries used by mission rollover, streak bookkeeping and dose-slot
// generation. The zero value is "no day".
type Day struct {
	t time.Time // midnight UTC of the calendar date
}

// DayOf returns the calendar day of t in the given location.
func DayOf(t time.Time, loc *time.Location) Day {
	y, m, d := t.In(loc).Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: bad day %q", domain.ErrInvalidInput, s)
	}
	return Day{t: t}, nil
}

// MustParseDay is ParseDay for static values in tests and seed data.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Day) String() string { return d.t.Format(DayFormat) }

func (d Day) IsZero() bool { return d.t.IsZero() }

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

func (d Day) Next() Day { return d.AddDays(1) }

func (d Day) Prev() Day { return d.AddDays(-1) }

func (d Day) Weekday() time.Weekday { return d.t.Weekday() }

func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }

func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

// DaysSince returns the signed number of days from other to d.
func (d Day) DaysSince(other Day) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}

// ParseWeekday resolves a lowercase English weekday name.
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("%w: unknown weekday %q", domain.ErrInvalidInput, name)
}

// Clock supplies the current local calendar day. Services take a Clock so
// tests can pin the day and exercise rollover deterministically.
type Clock interface {
	Now() time.Time
	Today() Day
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a Clock resolving days in loc. A nil location
// falls back to time.Local.
func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time { return time.Now().In(c.loc) }

func (c *systemClock) Today() Day { return DayOf(time.Now(), c.loc) }

// FixedClock is a Clock pinned to a single day, for tests.
type FixedClock struct {
	Day  Day
	Time time.Time
}

func (c *FixedClock) Now() time.Time {
	if !c.Time.IsZero() {
		return c.Time
	}
	return c.Day.t
}

func (c *FixedClock) Today() Day { return c.Day }
