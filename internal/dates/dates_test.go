package dates

import (
	"strings"
	"testing"
	"time"
)

func TestParseLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"rfc3339", "2023-05-15T10:30:00Z", true},
		{"rfc3339 with offset", "2023-05-15T10:30:00+02:00", true},
		{"iso without zone", "2023-05-15T10:30:00", true},
		{"iso minutes only", "2023-05-15T10:30", true},
		{"rfc1123z", "Mon, 15 May 2023 10:30:00 +0000", true},
		{"rfc1123 named zone", "Mon, 15 May 2023 10:30:00 GMT", true},
		{"rfc2822 single digit day", "Mon, 1 May 2023 10:30:00 +0000", true},
		{"rfc2822 no weekday", "15 May 2023 10:30:00 GMT", true},
		{"date only", "2023-05-15", true},
		{"slash date", "2023/05/15", true},
		{"us date", "05/15/2023", true},
		{"long month", "May 15, 2023", true},
		{"empty", "", false},
		{"garbage", "not a date", false},
		{"numeric garbage", "123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Parse(tt.input)
			if ok != tt.ok {
				t.Errorf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestParseInstant(t *testing.T) {
	want := time.Date(2023, time.May, 15, 10, 30, 0, 0, time.UTC)

	inputs := []string{
		"2023-05-15T10:30:00Z",
		"Mon, 15 May 2023 10:30:00 +0000",
	}
	for _, input := range inputs {
		got, ok := Parse(input)
		if !ok {
			t.Fatalf("Parse(%q) failed", input)
		}
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestFormatDateSentinels(t *testing.T) {
	if got := FormatDate(""); got != UnknownDate {
		t.Errorf("FormatDate(\"\") = %q, want %q", got, UnknownDate)
	}
	if got := FormatDate("definitely not a date"); got != InvalidDate {
		t.Errorf("FormatDate(garbage) = %q, want %q", got, InvalidDate)
	}
}

func TestFormatDateBuckets(t *testing.T) {
	now := time.Now()

	today := now.Format(time.RFC3339)
	if got := FormatDate(today); !strings.HasPrefix(got, "Today at ") {
		t.Errorf("FormatDate(today) = %q, want Today prefix", got)
	}

	yesterday := now.Add(-25 * time.Hour).Format(time.RFC3339)
	if got := FormatDate(yesterday); !strings.HasPrefix(got, "Yesterday at ") {
		t.Errorf("FormatDate(yesterday) = %q, want Yesterday prefix", got)
	}

	threeDaysAgo := now.Add(-3 * 24 * time.Hour)
	got := FormatDate(threeDaysAgo.Format(time.RFC3339))
	if !strings.HasPrefix(got, threeDaysAgo.Weekday().String()) {
		t.Errorf("FormatDate(3 days ago) = %q, want weekday prefix %q", got, threeDaysAgo.Weekday())
	}

	if got := FormatDate("2020-01-15T10:30:00Z"); got != "Jan 15, 2020" {
		t.Errorf("FormatDate(old date) = %q, want %q", got, "Jan 15, 2020")
	}
}

func TestFormatRelativeFutureDates(t *testing.T) {
	// A future date has a negative day distance, which lands in the
	// weekday bucket rather than Today.
	now := time.Date(2023, time.May, 15, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)

	got := formatRelative(tomorrow, now)
	if !strings.HasPrefix(got, tomorrow.Weekday().String()) {
		t.Errorf("formatRelative(tomorrow) = %q, want weekday prefix %q", got, tomorrow.Weekday())
	}
}

func TestFormatRelativeBoundaries(t *testing.T) {
	now := time.Date(2023, time.May, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"same instant", now, "Today at 12:00 PM"},
		{"23 hours ago", now.Add(-23 * time.Hour), "Today at 1:00 PM"},
		{"exactly one day", now.Add(-24 * time.Hour), "Yesterday at 12:00 PM"},
		{"six days ago", now.Add(-6 * 24 * time.Hour), "Tuesday at 12:00 PM"},
		{"seven days ago", now.Add(-7 * 24 * time.Hour), "May 8, 2023"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelative(tt.t, now); got != tt.want {
				t.Errorf("formatRelative = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{10, 3, 3},
		{-1, 3, -1},
		{-3, 3, -1},
		{-4, 3, -2},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
