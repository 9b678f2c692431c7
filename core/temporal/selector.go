package temporal

import (
	"errors"
	"time"
)

// Window is a named date window resolved against an injected "now".
type Window string

const (
	WindowAllTime      Window = "all_time"
	WindowToday        Window = "today"
	WindowThisWeek     Window = "this_week" // ISO week, Monday start
	WindowThisMonth    Window = "this_month"
	WindowThisYear     Window = "this_year"
	WindowLast7Days    Window = "last_7_days"
	WindowLast30Days   Window = "last_30_days"
	WindowLast90Days   Window = "last_90_days"
	WindowLast12Months Window = "last_12_months"
	WindowCustom       Window = "custom"
)

var (
	// errors
	ErrUnknownWindow = errors.New("unknown date window")
	ErrInvalidRange  = errors.New("`from` must not be after `to`")
	ErrMissingFrom   = errors.New("`from` is required for a custom window")
)

// Selector declares a date window. From/To are only read for WindowCustom.
type Selector struct {
	Window Window    `json:"window"`
	From   time.Time `json:"from,omitempty"`
	To     time.Time `json:"to,omitempty"`
}

// Range is a resolved [Start, End] window, inclusive on both ends.
// An unbounded range matches every record.
type Range struct {
	Start     time.Time
	End       time.Time
	Unbounded bool
}

// Contains reports whether t falls within the range (inclusive on both ends).
func (r Range) Contains(t time.Time) bool {
	if r.Unbounded {
		return true
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// Resolve turns a Selector into a concrete Range using the caller's clock and
// calendar. `now` is injected so resolution is deterministic and testable.
func Resolve(sel Selector, now time.Time) (Range, error) {
	switch sel.Window {
	case WindowAllTime, "":
		return Range{Unbounded: true}, nil
	case WindowToday:
		return dayRange(now, now), nil
	case WindowThisWeek:
		// Monday 00:00:00 through Sunday 23:59:59.999999999
		offset := (int(now.Weekday()) + 6) % 7
		monday := now.AddDate(0, 0, -offset)
		return dayRange(monday, monday.AddDate(0, 0, 6)), nil
	case WindowThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: first, End: first.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
	case WindowThisYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Range{Start: first, End: first.AddDate(1, 0, 0).Add(-time.Nanosecond)}, nil
	case WindowLast7Days:
		return lastNDays(now, 7), nil
	case WindowLast30Days:
		return lastNDays(now, 30), nil
	case WindowLast90Days:
		return lastNDays(now, 90), nil
	case WindowLast12Months:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)
		return Range{Start: first, End: endOfDay(now)}, nil
	case WindowCustom:
		if sel.From.IsZero() {
			return Range{}, ErrMissingFrom
		}
		to := sel.To
		if to.IsZero() {
			to = sel.From
		}
		if sel.From.After(to) {
			return Range{}, ErrInvalidRange
		}
		return dayRange(sel.From, to), nil
	}
	return Range{}, ErrUnknownWindow
}

// lastNDays is an inclusive window of exactly n calendar days ending today.
func lastNDays(now time.Time, n int) Range {
	return dayRange(now.AddDate(0, 0, -(n-1)), now)
}

// dayRange spans the beginning of from's day through the end of to's day.
func dayRange(from, to time.Time) Range {
	return Range{Start: startOfDay(from), End: endOfDay(to)}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
