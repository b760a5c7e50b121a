package synth

import (
	"fmt"
	"time"
)

// Date layout constants for the HTML date/time input serialization formats.
const (
	LayoutDate  = "2006-01-02"
	LayoutTime  = "15:04"
	LayoutMonth = "2006-01"
)

// Date returns a uniform random instant between min and max. A zero min
// defaults to thirty years ago; a zero max defaults to one year ahead.
// Inverted bounds are swapped.
func (g *Generator) Date(min, max time.Time) time.Time {
	now := time.Now()
	if min.IsZero() {
		min = now.AddDate(-30, 0, 0)
	}
	if max.IsZero() {
		max = now.AddDate(1, 0, 0)
	}
	if min.After(max) {
		min, max = max, min
	}
	span := max.Unix() - min.Unix()
	if span <= 0 {
		return min
	}
	return time.Unix(min.Unix()+g.rng.Int64N(span+1), 0).UTC()
}

// DateString returns a date between min and max in 2006-01-02 form.
func (g *Generator) DateString(min, max time.Time) string {
	return g.Date(min, max).Format(LayoutDate)
}

// TimeString returns a random time of day in 15:04 form.
func (g *Generator) TimeString() string {
	return fmt.Sprintf("%02d:%02d", g.rng.IntN(24), g.rng.IntN(60))
}

// MonthString returns a random year-month in 2006-01 form.
func (g *Generator) MonthString(min, max time.Time) string {
	return g.Date(min, max).Format(LayoutMonth)
}

// WeekString returns a random ISO week in 2006-W02 form.
func (g *Generator) WeekString(min, max time.Time) string {
	y, w := g.Date(min, max).ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}
