package reminder

import (
	"testing"
	"time"
)

func TestParseStart(t *testing.T) {
	tests := []struct {
		raw       string
		want      time.Time
		wantClock bool
		wantErr   bool
	}{
		{raw: "2026-06-10", want: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
		{raw: " 2026-06-10 ", want: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
		{raw: "2026-06-10T18:00", want: time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC), wantClock: true},
		{raw: "2026-06-10T18:00:30", want: time.Date(2026, 6, 10, 18, 0, 30, 0, time.UTC), wantClock: true},
		{raw: "2026-06-10 09:15", want: time.Date(2026, 6, 10, 9, 15, 0, 0, time.UTC), wantClock: true},
		{raw: "2026-06-10T23:30:00+02:00", want: time.Date(2026, 6, 10, 23, 30, 0, 0, time.UTC), wantClock: true},
		{raw: "", wantErr: true},
		{raw: "10.06.2026", wantErr: true},
		{raw: "2026-13-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, clock, err := ParseStart(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStart(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equal(tt.want) || clock != tt.wantClock {
				t.Fatalf("ParseStart(%q) = %v, %v; want %v, %v", tt.raw, got, clock, tt.want, tt.wantClock)
			}
		})
	}
}

func TestParseMonthDay(t *testing.T) {
	valid := map[string]MonthDay{
		"03-15": {Month: time.March, Day: 15},
		"02-29": {Month: time.February, Day: 29},
		"12-31": {Month: time.December, Day: 31},
		"1-5":   {Month: time.January, Day: 5},
	}
	for raw, want := range valid {
		got, err := ParseMonthDay(raw)
		if err != nil || got != want {
			t.Errorf("ParseMonthDay(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
	for _, raw := range []string{"", "0315", "00-10", "13-01", "04-31", "02-30", "03-00", "ab-cd", "2026-03-15"} {
		if _, err := ParseMonthDay(raw); err == nil {
			t.Errorf("ParseMonthDay(%q) should fail", raw)
		}
	}
}

func TestMonthDayInYear(t *testing.T) {
	leap := MonthDay{Month: time.February, Day: 29}
	if _, ok := leap.InYear(2027); ok {
		t.Error("Feb 29 must not exist in 2027")
	}
	if got, ok := leap.InYear(2028); !ok || got != NewDate(2028, time.February, 29) {
		t.Errorf("InYear(2028) = %v, %v", got, ok)
	}
	if got := leap.String(); got != "02-29" {
		t.Errorf("String() = %q", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to Date
		want     int
	}{
		{NewDate(2026, 2, 13), NewDate(2026, 3, 15), 30},
		{NewDate(2026, 6, 10), NewDate(2026, 6, 10), 0},
		{NewDate(2026, 6, 10), NewDate(2026, 6, 7), -3},
		{NewDate(2026, 12, 20), NewDate(2027, 1, 5), 16},
		{NewDate(2028, 2, 1), NewDate(2028, 3, 1), 29},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.from, tt.to); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	instant := time.Date(2026, 6, 11, 2, 0, 0, 0, time.UTC)
	if got := DateOf(instant.In(loc)); got != NewDate(2026, 6, 10) {
		t.Fatalf("DateOf in UTC-5 = %s, want 2026-06-10", got)
	}
	if got := NewDate(2026, 2, 29); got != NewDate(2026, 3, 1) {
		t.Fatalf("NewDate should normalize, got %s", got)
	}
}
