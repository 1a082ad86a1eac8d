package duration

import (
	"testing"
	"time"
)

func TestField(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"  ", 0},
		{"0", 0},
		{"45", 45},
		{" 45 ", 45},
		{"-3", 0},
		{"abc", 0},
		{"1.9", 1},
		{"2.0", 2},
		{"-1.5", 0},
		{"nan", 0},
		{"NaN", 0},
		{"inf", 0},
		{"+Inf", 0},
		{"-inf", 0},
	}
	for _, c := range cases {
		if got := Field(c.in); got != c.want {
			t.Fatalf("Field(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFieldClampsHugeValues(t *testing.T) {
	cases := []string{
		"1000001",
		"2147483648",
		"99999999999999999999",
		"1e300",
		"1.5e9",
	}
	for _, in := range cases {
		got := Field(in)
		if got != maxField {
			t.Fatalf("Field(%q) = %d, want cap %d", in, got, maxField)
		}
	}
	// Nothing Field returns may ever go negative, whatever the text.
	for _, in := range []string{"nan", "inf", "-inf", "1e300", "9e99", "99999999999999999999"} {
		if got := Field(in); got < 0 {
			t.Fatalf("Field(%q) = %d, want >= 0", in, got)
		}
	}
	if got := Field("1000000"); got != maxField {
		t.Fatalf("Field at the cap = %d, want %d", got, maxField)
	}
	if got := Field("999999"); got != 999999 {
		t.Fatalf("Field under the cap = %d, want 999999", got)
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds("1", "30"); got != 90 {
		t.Fatalf("Seconds(1,30) = %d, want 90", got)
	}
	if got := Seconds("", "x"); got != 0 {
		t.Fatalf("Seconds of garbage = %d, want 0", got)
	}
	if got := SecondsHMS("1", "1", "1"); got != 3661 {
		t.Fatalf("SecondsHMS(1,1,1) = %d, want 3661", got)
	}
}

func TestParseColon(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"90", 90},
		{"1:30", 90},
		{"1:05", 65},
		{"1:1:1", 3661},
		{"0:0:90", 90},
		{"bad", 0},
		{"1:bad", 60},
		{" 2:00 ", 120},
	}
	for _, c := range cases {
		if got := ParseColon(c.in); got != c.want {
			t.Fatalf("ParseColon(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{65, "1:05"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{-4, "0:00"},
	}
	for _, c := range cases {
		if got := FormatSeconds(c.in); got != c.want {
			t.Fatalf("FormatSeconds(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 59, 60, 61, 599, 3599, 3600, 3661, 86399} {
		if got := ParseColon(FormatSeconds(n)); got != n {
			t.Fatalf("round trip of %d gave %d", n, got)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{24, "+0:24"},
		{-58, "-0:58"},
		{3600, "+1:00:00"},
	}
	for _, c := range cases {
		if got := FormatSigned(c.in); got != c.want {
			t.Fatalf("FormatSigned(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClock(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	at := time.Date(2024, 5, 1, 12, 4, 5, 0, loc)
	if got := Clock(at); got != "09:04:05" {
		t.Fatalf("Clock = %q, want 09:04:05", got)
	}
}

func TestParseClock(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	got, err := ParseClock("18:30", now)
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	want := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseClock(18:30) = %v, want %v", got, want)
	}

	got, err = ParseClock("18:30:15", now)
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	want = time.Date(2024, 5, 1, 18, 30, 15, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseClock(18:30:15) = %v, want %v", got, want)
	}
}

func TestParseClockRollsForward(t *testing.T) {
	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	got, err := ParseClock("06:00", now)
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	want := time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseClock rolled to %v, want %v", got, want)
	}
}

func TestParseClockExactNow(t *testing.T) {
	now := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	got, err := ParseClock("06:00", now)
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("ParseClock at exactly now = %v, want %v", got, now)
	}
}

func TestParseClockRejectsGarbage(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"", "18", "25:00", "18:61", "a:b", "1:2:3:4"} {
		if _, err := ParseClock(in, now); err == nil {
			t.Fatalf("ParseClock(%q) accepted invalid input", in)
		}
	}
}
