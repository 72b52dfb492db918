package model

import (
	"time"

	"github.com/google/uuid"
)

type DashboardQuery struct {
	SessionID uuid.UUID
	Date      time.Time
}

func (q DashboardQuery) Normalize() DashboardQuery {
	q.Date = DateOnly(q.Date)
	return q
}

type DetailCommand struct {
	SessionID   uuid.UUID
	SeriesIndex int
	Hour        int
}

func (c DetailCommand) Direction() Direction {
	return DirectionFromSeries(c.SeriesIndex)
}

// DateOnly keeps the civil date of t and drops the clock and zone.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay compares civil dates, each in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

const DateLayout = "2006-01-02"

// DateOptions feeds the date picker. Default is the date of the first report
// row and is empty when the report has no dated rows.
type DateOptions struct {
	Dates   []string `json:"dates"`
	Default string   `json:"default,omitempty"`
}

func NewDateOptions(dates []time.Time, first time.Time, hasFirst bool) DateOptions {
	options := DateOptions{Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		options.Dates = append(options.Dates, d.Format(DateLayout))
	}
	if hasFirst {
		options.Default = first.Format(DateLayout)
	}
	return options
}
