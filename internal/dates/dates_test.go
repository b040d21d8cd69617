package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-3-5", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024/03/05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024.3.5", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"20240305", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024年3月5日", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-05 14:30:00", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), true},
		{"2024-03-05 14:30", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), true},
		{"2024-03-05T14:30:00", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), true},
		{"  2024-03-05  ", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"   ", time.Time{}, false},
		{"not a date", time.Time{}, false},
		{"2024-13-40", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseExtraLayoutsTakePriority(t *testing.T) {
	got, ok := Parse("05-03-2024", "02-01-2006")
	if !ok {
		t.Fatal("expected extra layout to match")
	}
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"same instant", base, 0},
		{"exactly one day", base.AddDate(0, 0, 1), 1},
		{"partial second day", base.Add(36 * time.Hour), 1},
		{"same calendar day", base.Add(23 * time.Hour), 0},
		{"negative", base.AddDate(0, 0, -3), -3},
		{"negative partial", base.Add(-36 * time.Hour), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(base, tt.end); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

// A wall-clock end in a non-UTC zone must count calendar days, not
// 24-hour blocks since the UTC-midnight start.
func TestDaysBetweenZonedEnd(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{
			// 2024-06-30 06:00 +08:00 is 2024-06-29 22:00 UTC; the local
			// calendar still reads June 30, 181 days after January 1.
			"early morning east of UTC",
			time.Date(2024, 6, 30, 6, 0, 0, 0, time.FixedZone("CST", 8*3600)),
			181,
		},
		{
			// 2024-06-29 20:00 -05:00 is 2024-06-30 01:00 UTC; the local
			// calendar still reads June 29.
			"late evening west of UTC",
			time.Date(2024, 6, 29, 20, 0, 0, 0, time.FixedZone("EST", -5*3600)),
			180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(start, tt.end); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}
