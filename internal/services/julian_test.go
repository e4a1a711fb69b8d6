package services

import (
	"errors"
	"math"
	"testing"

	"natal-chart-service/internal/domain"
)

func TestToJulianDayKnownEpochs(t *testing.T) {
	cases := []struct {
		name string
		u    domain.UtcInstant
		want float64
	}{
		{"J2000", domain.UtcInstant{Year: 2000, Month: 1, Day: 1, Hour: 12}, 2451545.0},
		{"J2000 midnight", domain.UtcInstant{Year: 2000, Month: 1, Day: 1, Hour: 0}, 2451544.5},
		{"unix epoch", domain.UtcInstant{Year: 1970, Month: 1, Day: 1, Hour: 0}, 2440587.5},
		{"gregorian reform eve", domain.UtcInstant{Year: 1600, Month: 1, Day: 1, Hour: 12}, 2305448.0},
		{"fractional hour", domain.UtcInstant{Year: 2000, Month: 1, Day: 1, Hour: 18}, 2451545.25},
	}

	for _, c := range cases {
		got, err := ToJulianDay(c.u)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-6 {
			t.Errorf("%s: ToJulianDay = %f, want %f", c.name, got, c.want)
		}
	}
}

func TestToJulianDayMonotonic(t *testing.T) {
	// Strictly increasing across day, month, and year boundaries.
	instants := []domain.UtcInstant{
		{Year: 1999, Month: 12, Day: 31, Hour: 23.5},
		{Year: 2000, Month: 1, Day: 1, Hour: 0},
		{Year: 2000, Month: 1, Day: 1, Hour: 0.25},
		{Year: 2000, Month: 1, Day: 31, Hour: 23.9},
		{Year: 2000, Month: 2, Day: 1, Hour: 0},
		{Year: 2000, Month: 2, Day: 29, Hour: 12},
		{Year: 2000, Month: 3, Day: 1, Hour: 0},
		{Year: 2100, Month: 3, Day: 1, Hour: 0},
	}

	prev := math.Inf(-1)
	for _, u := range instants {
		jd, err := ToJulianDay(u)
		if err != nil {
			t.Fatalf("%+v: unexpected error: %v", u, err)
		}
		if jd <= prev {
			t.Fatalf("%+v: jd %f not greater than previous %f", u, jd, prev)
		}
		prev = jd
	}
}

func TestToJulianDayInvalidInput(t *testing.T) {
	for _, u := range []domain.UtcInstant{
		{Year: 2000, Month: 13, Day: 1},
		{Year: 2000, Month: 1, Day: 32},
		{Year: 2000, Month: 1, Day: 1, Hour: 24.5},
		{Year: 1200, Month: 1, Day: 1},
	} {
		_, err := ToJulianDay(u)
		if err == nil {
			t.Errorf("%+v: expected error, got nil", u)
			continue
		}
		var ide *domain.InvalidDateError
		if !errors.As(err, &ide) {
			t.Errorf("%+v: error %v is not *InvalidDateError", u, err)
		}
	}
}
