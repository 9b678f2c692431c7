package temporal

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOf(y int, m time.Month, d int) time.Time {
	return date(y, m, d).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func TestResolve(t *testing.T) {
	// a Saturday, mid-day
	now := time.Date(2024, time.July, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		sel     Selector
		want    Range
		wantErr error
	}{
		{name: "empty window defaults to all time", sel: Selector{}, want: Range{Unbounded: true}},
		{name: "all time", sel: Selector{Window: WindowAllTime}, want: Range{Unbounded: true}},
		{
			name: "today",
			sel:  Selector{Window: WindowToday},
			want: Range{Start: date(2024, time.July, 20), End: endOf(2024, time.July, 20)},
		},
		{
			name: "this week starts Monday",
			sel:  Selector{Window: WindowThisWeek},
			want: Range{Start: date(2024, time.July, 15), End: endOf(2024, time.July, 21)},
		},
		{
			name: "this month",
			sel:  Selector{Window: WindowThisMonth},
			want: Range{Start: date(2024, time.July, 1), End: endOf(2024, time.July, 31)},
		},
		{
			name: "this year",
			sel:  Selector{Window: WindowThisYear},
			want: Range{Start: date(2024, time.January, 1), End: endOf(2024, time.December, 31)},
		},
		{
			name: "last 7 days includes today",
			sel:  Selector{Window: WindowLast7Days},
			want: Range{Start: date(2024, time.July, 14), End: endOf(2024, time.July, 20)},
		},
		{
			name: "last 30 days",
			sel:  Selector{Window: WindowLast30Days},
			want: Range{Start: date(2024, time.June, 21), End: endOf(2024, time.July, 20)},
		},
		{
			name: "last 90 days",
			sel:  Selector{Window: WindowLast90Days},
			want: Range{Start: date(2024, time.April, 22), End: endOf(2024, time.July, 20)},
		},
		{
			name: "last 12 months starts on first of month",
			sel:  Selector{Window: WindowLast12Months},
			want: Range{Start: date(2023, time.August, 1), End: endOf(2024, time.July, 20)},
		},
		{
			name: "custom",
			sel:  Selector{Window: WindowCustom, From: date(2024, time.January, 10), To: date(2024, time.February, 1)},
			want: Range{Start: date(2024, time.January, 10), End: endOf(2024, time.February, 1)},
		},
		{
			name: "custom without to is a single day",
			sel:  Selector{Window: WindowCustom, From: date(2024, time.January, 10)},
			want: Range{Start: date(2024, time.January, 10), End: endOf(2024, time.January, 10)},
		},
		{
			name:    "custom without from",
			sel:     Selector{Window: WindowCustom},
			wantErr: ErrMissingFrom,
		},
		{
			name:    "custom from after to",
			sel:     Selector{Window: WindowCustom, From: date(2024, time.February, 1), To: date(2024, time.January, 10)},
			wantErr: ErrInvalidRange,
		},
		{name: "unknown window", sel: Selector{Window: "fortnight"}, wantErr: ErrUnknownWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.sel, now)
			if err != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Unbounded != tt.want.Unbounded {
				t.Errorf("Resolve() Unbounded = %v, want %v", got.Unbounded, tt.want.Unbounded)
			}
			if !got.Unbounded {
				if !got.Start.Equal(tt.want.Start) {
					t.Errorf("Resolve() Start = %v, want %v", got.Start, tt.want.Start)
				}
				if !got.End.Equal(tt.want.End) {
					t.Errorf("Resolve() End = %v, want %v", got.End, tt.want.End)
				}
			}
		})
	}
}

func TestResolve_weekBoundaries(t *testing.T) {
	// the same ISO week must resolve from a Monday and from a Sunday
	monday := time.Date(2024, time.July, 15, 8, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, time.July, 21, 23, 0, 0, 0, time.UTC)

	fromMonday, err := Resolve(Selector{Window: WindowThisWeek}, monday)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	fromSunday, err := Resolve(Selector{Window: WindowThisWeek}, sunday)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if !fromMonday.Start.Equal(fromSunday.Start) || !fromMonday.End.Equal(fromSunday.End) {
		t.Errorf("same week resolved differently: %+v vs %+v", fromMonday, fromSunday)
	}
}

func TestRange_Contains(t *testing.T) {
	rng := Range{Start: date(2024, time.July, 14), End: endOf(2024, time.July, 20)}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{name: "exact start", t: rng.Start, want: true},
		{name: "exact end", t: rng.End, want: true},
		{name: "inside", t: date(2024, time.July, 17), want: true},
		{name: "1ns before start", t: rng.Start.Add(-time.Nanosecond), want: false},
		{name: "1ns after end", t: rng.End.Add(time.Nanosecond), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rng.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}

	t.Run("unbounded contains everything", func(t *testing.T) {
		unbounded := Range{Unbounded: true}
		if !unbounded.Contains(time.Time{}) || !unbounded.Contains(date(1970, time.January, 1)) {
			t.Error("unbounded range must contain any time, including the zero time")
		}
	})
}
