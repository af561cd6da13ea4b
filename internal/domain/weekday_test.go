package domain

import (
	"testing"
	"time"
)

func TestParseWeekdaySetKoreanTokens(t *testing.T) {
	set := ParseWeekdaySet("월,수,금")
	for _, d := range []Weekday{Monday, Wednesday, Friday} {
		if !set.Contains(d) {
			t.Fatalf("expected %v in set", d)
		}
	}
	for _, d := range []Weekday{Tuesday, Thursday, Saturday, Sunday} {
		if set.Contains(d) {
			t.Fatalf("did not expect %v in set", d)
		}
	}
}

func TestParseWeekdaySetLongFormsAndEnglish(t *testing.T) {
	set := ParseWeekdaySet("월요일 / Saturday / sun")
	if !set.Contains(Monday) || !set.Contains(Saturday) || !set.Contains(Sunday) {
		t.Fatalf("mixed-form tokens not parsed: %v", set)
	}
}

func TestParseWeekdaySetDailyAliases(t *testing.T) {
	for _, raw := range []string{"", "매일", "daily", "all"} {
		set := ParseWeekdaySet(raw)
		for d := Monday; d <= Sunday; d++ {
			if !set.Contains(d) {
				t.Fatalf("%q should allow every weekday, missing %v", raw, d)
			}
		}
	}
}

func TestParseWeekdaySetSkipsUnknownTokens(t *testing.T) {
	set := ParseWeekdaySet("월,??,금")
	if !set.Contains(Monday) || !set.Contains(Friday) {
		t.Fatalf("known tokens should survive unknown neighbors")
	}
	if set.Contains(Tuesday) {
		t.Fatalf("unknown token must not add weekdays")
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2026-09-07 is a Monday, 2026-09-13 a Sunday.
	mon := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	if got := WeekdayOf(mon); got != Monday {
		t.Fatalf("expected Monday, got %v", got)
	}
	if got := WeekdayOf(sun); got != Sunday {
		t.Fatalf("expected Sunday, got %v", got)
	}
}
