// Package hours evaluates free-form opening-hours strings such as
// "Mon-Fri 11:00-22:00" or "Weekends 10:00-02:00".
package hours

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const daysPerWeek = 7

var (
	timeRangeRe = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)
	dayRangeRe  = regexp.MustCompile(`^(mon|tue|wed|thu|fri|sat|sun)-(mon|tue|wed|thu|fri|sat|sun)$`)
	singleDayRe = regexp.MustCompile(`^(mon|tue|wed|thu|fri|sat|sun)$`)
	separatorRe = regexp.MustCompile(`[,/&]+`)
)

var dayIndex = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// DaySet is a bitmask of weekdays, bit 0 = Sunday.
type DaySet uint8

const (
	AllDays  DaySet = 1<<daysPerWeek - 1
	Weekdays DaySet = 1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday | 1<<time.Thursday | 1<<time.Friday
	Weekends DaySet = 1<<time.Saturday | 1<<time.Sunday
)

// Has reports whether d is in the set.
func (s DaySet) Has(d time.Weekday) bool {
	return s&(1<<d) != 0
}

func (s DaySet) with(d time.Weekday) DaySet {
	return s | 1<<d
}

// Days returns the members of the set in Sunday-first order.
func (s DaySet) Days() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Schedule is one parsed opening-hours string. Open and Close are minutes
// since local midnight; Open > Close means the window crosses midnight.
type Schedule struct {
	Days  DaySet
	Open  int
	Close int
}

// Overnight reports whether the window spans into the next day.
func (s Schedule) Overnight() bool {
	return s.Open > s.Close
}

// OpenAt reports whether the schedule is open at the given instant, using
// the weekday and wall clock of at's location.
func (s Schedule) OpenAt(at time.Time) bool {
	today := at.Weekday()
	now := at.Hour()*60 + at.Minute()

	if !s.Overnight() {
		return s.Days.Has(today) && now >= s.Open && now < s.Close
	}

	previous := (today + daysPerWeek - 1) % daysPerWeek
	lateToday := s.Days.Has(today) && now >= s.Open
	pastMidnight := s.Days.Has(previous) && now < s.Close
	return lateToday || pastMidnight
}

// Parse extracts the day set and time window from text. ok is false when
// no valid H:MM-H:MM range is present.
func Parse(text string) (sched Schedule, ok bool) {
	loc := timeRangeRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return Schedule{}, false
	}

	open, okOpen := toMinutes(text[loc[2]:loc[3]])
	closing, okClose := toMinutes(text[loc[4]:loc[5]])
	if !okOpen || !okClose {
		return Schedule{}, false
	}

	return Schedule{
		Days:  resolveDays(text[:loc[0]]),
		Open:  open,
		Close: closing,
	}, true
}

// IsOpen parses text and evaluates it at the given instant. Unparseable
// input is treated as closed.
func IsOpen(text string, at time.Time) bool {
	sched, ok := Parse(text)
	if !ok {
		return false
	}
	return sched.OpenAt(at)
}

func toMinutes(clock string) (int, bool) {
	h, m, found := strings.Cut(clock, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func resolveDays(descriptor string) DaySet {
	normalized := strings.ToLower(strings.TrimSpace(descriptor))
	switch {
	case normalized == "":
		return AllDays
	case strings.Contains(normalized, "daily"),
		strings.Contains(normalized, "every day"),
		strings.Contains(normalized, "everyday"):
		return AllDays
	case strings.Contains(normalized, "weekdays"):
		return Weekdays
	case strings.Contains(normalized, "weekends"):
		return Weekends
	}

	var days DaySet
	for _, token := range separatorRe.Split(normalized, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if m := dayRangeRe.FindStringSubmatch(token); m != nil {
			days |= expandRange(dayIndex[m[1]], dayIndex[m[2]])
			continue
		}
		if m := singleDayRe.FindStringSubmatch(token); m != nil {
			days = days.with(dayIndex[m[1]])
		}
	}

	if days == 0 {
		return AllDays
	}
	return days
}

// expandRange walks forward from start to end, wrapping past Saturday.
// The walk stops after a full week.
func expandRange(start, end time.Weekday) DaySet {
	days := DaySet(0).with(start)
	current := start
	for steps := 0; current != end && steps < daysPerWeek; steps++ {
		current = (current + 1) % daysPerWeek
		days = days.with(current)
	}
	return days
}

// String renders the window as HH:MM-HH:MM.
func (s Schedule) String() string {
	return formatClock(s.Open) + "-" + formatClock(s.Close)
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
