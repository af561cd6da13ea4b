package domain

import (
	"strings"
	"time"
)

// Weekday is an enumerated day of week. Price rows restrict availability via a
// weekday set parsed from the reference data's weekday_type column; membership
// is an exact set test, never substring matching, so labels like "화" and
// "화요일" can never shadow each other.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdaySet is a bitmask over Monday..Sunday.
type WeekdaySet uint8

var weekdayTokens = map[string]Weekday{
	"월": Monday, "월요일": Monday, "mon": Monday, "monday": Monday,
	"화": Tuesday, "화요일": Tuesday, "tue": Tuesday, "tuesday": Tuesday,
	"수": Wednesday, "수요일": Wednesday, "wed": Wednesday, "wednesday": Wednesday,
	"목": Thursday, "목요일": Thursday, "thu": Thursday, "thursday": Thursday,
	"금": Friday, "금요일": Friday, "fri": Friday, "friday": Friday,
	"토": Saturday, "토요일": Saturday, "sat": Saturday, "saturday": Saturday,
	"일": Sunday, "일요일": Sunday, "sun": Sunday, "sunday": Sunday,
}

// ParseWeekdayToken resolves one label ("화", "화요일", "Tue") to a Weekday.
func ParseWeekdayToken(raw string) (Weekday, bool) {
	d, ok := weekdayTokens[strings.ToLower(strings.TrimSpace(raw))]
	return d, ok
}

// ParseWeekdaySet splits a weekday_type value on common separators and parses
// each token exactly. "매일" (every day) and the empty string mean no
// restriction: all days. Unknown tokens are skipped.
func ParseWeekdaySet(raw string) WeekdaySet {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "매일" || strings.EqualFold(raw, "daily") || strings.EqualFold(raw, "all") {
		return AllWeekdays()
	}

	var set WeekdaySet
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '/' || r == '·' || r == ' ' || r == '|'
	})
	for _, tok := range tokens {
		if d, ok := ParseWeekdayToken(tok); ok {
			set = set.Add(d)
		}
	}
	return set
}

// AllWeekdays returns a set containing every day.
func AllWeekdays() WeekdaySet {
	return WeekdaySet(1<<7 - 1)
}

func (s WeekdaySet) Add(d Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

func (s WeekdaySet) Contains(d Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// Empty reports whether no day is allowed (all tokens were unknown).
func (s WeekdaySet) Empty() bool {
	return s == 0
}

// WeekdayOf maps a calendar date to its Weekday.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}
