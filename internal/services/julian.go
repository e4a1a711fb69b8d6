package services

import (
	"fmt"

	"natal-chart-service/internal/domain"
)

// ToJulianDay converts a UT instant to a Julian Day number, the
// continuous time axis the ephemeris oracle works on.
//
// Standard Gregorian calendar arithmetic: the integer day number is
// anchored at 12h UT, and the fractional UT hour folds in directly
// with no rounding to seconds. Strictly increasing over the supported
// calendar range.
func ToJulianDay(u domain.UtcInstant) (float64, error) {
	if err := u.Validate(); err != nil {
		return 0, fmt.Errorf("to julian day: %w", err)
	}

	a := (14 - u.Month) / 12
	y := u.Year + 4800 - a
	m := u.Month + 12*a - 3

	jdn := u.Day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045

	return float64(jdn) + (u.Hour-12)/24, nil
}
