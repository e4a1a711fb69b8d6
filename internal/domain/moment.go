package domain

import (
	"fmt"
	"time"
)

// Calendar years the system accepts. The lower bound is the Gregorian
// reform; zone rules and ephemeris data are meaningless before it.
const (
	MinYear = 1583
	MaxYear = 9999
)

// CivilMoment is a wall-clock timestamp with no attached zone.
// It is not self-describing: it must be paired with a GeoCoordinate
// before it can be resolved to an unambiguous instant.
//
// Hour may carry a fractional part (e.g. 13.75 for 13:45); Minute and
// Second are folded in on top of it, so either form works.
type CivilMoment struct {
	Year   int
	Month  int
	Day    int
	Hour   float64
	Minute int
	Second int
}

// ClockDuration returns the offset from local midnight.
func (m CivilMoment) ClockDuration() time.Duration {
	return time.Duration(m.Hour*float64(time.Hour)) +
		time.Duration(m.Minute)*time.Minute +
		time.Duration(m.Second)*time.Second
}

// Validate checks calendar and clock components, failing with
// *InvalidDateError instead of silently wrapping out-of-range values.
func (m CivilMoment) Validate() error {
	if m.Year < MinYear || m.Year > MaxYear {
		return &InvalidDateError{Reason: fmt.Sprintf("year %d outside supported range %d..%d", m.Year, MinYear, MaxYear)}
	}
	if m.Month < 1 || m.Month > 12 {
		return &InvalidDateError{Reason: fmt.Sprintf("month %d out of range", m.Month)}
	}
	if m.Day < 1 || m.Day > daysIn(m.Year, m.Month) {
		return &InvalidDateError{Reason: fmt.Sprintf("day %d out of range for %d-%02d", m.Day, m.Year, m.Month)}
	}
	if m.Hour < 0 || m.Hour >= 24 {
		return &InvalidDateError{Reason: fmt.Sprintf("hour %v out of range", m.Hour)}
	}
	if m.Minute < 0 || m.Minute > 59 {
		return &InvalidDateError{Reason: fmt.Sprintf("minute %d out of range", m.Minute)}
	}
	if m.Second < 0 || m.Second > 59 {
		return &InvalidDateError{Reason: fmt.Sprintf("second %d out of range", m.Second)}
	}
	if m.ClockDuration() >= 24*time.Hour {
		return &InvalidDateError{Reason: "combined clock time past end of day"}
	}
	return nil
}

// UtcInstant is a fully resolved, DST-free astronomical time.
// Hour is a fractional UT hour. Derived by the civil time resolver,
// never supplied by callers directly.
type UtcInstant struct {
	Year  int
	Month int
	Day   int
	Hour  float64
}

func (u UtcInstant) Validate() error {
	if u.Year < MinYear || u.Year > MaxYear {
		return &InvalidDateError{Reason: fmt.Sprintf("year %d outside supported range %d..%d", u.Year, MinYear, MaxYear)}
	}
	if u.Month < 1 || u.Month > 12 {
		return &InvalidDateError{Reason: fmt.Sprintf("month %d out of range", u.Month)}
	}
	if u.Day < 1 || u.Day > daysIn(u.Year, u.Month) {
		return &InvalidDateError{Reason: fmt.Sprintf("day %d out of range for %d-%02d", u.Day, u.Year, u.Month)}
	}
	if u.Hour < 0 || u.Hour >= 24 {
		return &InvalidDateError{Reason: fmt.Sprintf("hour %v out of range", u.Hour)}
	}
	return nil
}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysIn(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return monthDays[month]
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
