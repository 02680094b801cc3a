package status

import "time"

// Flag is one of the four reminder states for a (plot, trait) pair. The
// values are stable strings so downstream CSV/XLSX/heatmap renderers can map
// each to a fixed color or glyph.
type Flag string

const (
	TooEarly  Flag = "TOO_EARLY"
	DueSoon   Flag = "DUE_SOON"
	Overdue   Flag = "OVERDUE"
	Completed Flag = "COMPLETED"
)

// Glyphs used by the dashboard tables and exports.
var symbols = map[Flag]string{
	TooEarly:  "🕓",
	DueSoon:   "⏳",
	Overdue:   "❌",
	Completed: "✔️",
}

func (f Flag) Symbol() string {
	if s, ok := symbols[f]; ok {
		return s
	}
	return "-"
}

func (f Flag) Valid() bool {
	_, ok := symbols[f]
	return ok
}

// Policy selects one of the two derivation rules carried over from the
// dashboard: plain date comparison, or a +/- day window around the expected
// date where any recorded value counts as completed.
type Policy string

const (
	PolicySimple   Policy = "simple"
	PolicyWindowed Policy = "windowed"
)

// Window bounds for PolicyWindowed, in days relative to the expected date.
// delta = today - expected; delta < -TooEarlyDays is too early, delta up to
// +DueSoonGraceDays is still due-soon, anything later is overdue.
const (
	TooEarlyDays     = 5
	DueSoonGraceDays = 3
)

// Derive maps the three dates relevant to one (plot, trait) pair to a Flag.
// It is total: nil expected/actual dates are valid states, not errors.
func Derive(p Policy, expected, actual *time.Time, today time.Time) Flag {
	if p == PolicyWindowed {
		return deriveWindowed(expected, actual, today)
	}
	return deriveSimple(expected, actual, today)
}

// deriveSimple mirrors the reminder rule used by the timeline screens:
// collected before the expected date reads as too early, on or after as
// completed; uncollected is overdue once the expected date has passed.
func deriveSimple(expected, actual *time.Time, today time.Time) Flag {
	if actual == nil {
		if expected != nil && dateOnly(*expected).Before(dateOnly(today)) {
			return Overdue
		}
		return DueSoon
	}
	if expected != nil && dateOnly(*actual).Before(dateOnly(*expected)) {
		return TooEarly
	}
	return Completed
}

// deriveWindowed is the bulk-import rule: a recorded value means done no
// matter the date, otherwise the flag depends on how far today sits from the
// expected date.
func deriveWindowed(expected, actual *time.Time, today time.Time) Flag {
	if actual != nil {
		return Completed
	}
	if expected == nil {
		return DueSoon
	}
	delta := daysBetween(dateOnly(*expected), dateOnly(today))
	switch {
	case delta < -TooEarlyDays:
		return TooEarly
	case delta <= DueSoonGraceDays:
		return DueSoon
	default:
		return Overdue
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
