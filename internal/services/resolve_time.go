package services

import (
	"fmt"
	"time"

	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/ports"
)

// ResolveToUTC interprets a wall-clock moment in the timezone covering
// coord and returns the equivalent UT instant plus the zone name.
//
// The zone's offset and DST rules effective on that calendar date
// apply, so historical moments resolve against historical rules. The
// result's date may differ from the input date: midnight rollovers
// are preserved, not clamped.
//
// Ambiguous local times (fall-back repeated hour) resolve to the
// earlier instant. Nonexistent local times (spring-forward gap)
// resolve to the instant the pre-transition offset would give, so
// 02:30 in a 02:00-03:00 gap lands on 01:30 standard time. Both
// follow time.Date normalization.
func ResolveToUTC(
	m domain.CivilMoment,
	coord domain.GeoCoordinate,
	locator ports.TimezoneLocator,
) (domain.UtcInstant, string, error) {
	if err := m.Validate(); err != nil {
		return domain.UtcInstant{}, "", fmt.Errorf("resolve to utc: %w", err)
	}

	if !coord.Valid() {
		return domain.UtcInstant{}, "", fmt.Errorf(
			"resolve to utc: lat=%v lon=%v out of range: %w",
			coord.Lat, coord.Lon, domain.ErrLocationUnresolvable,
		)
	}

	zone, ok := locator.FindZone(coord)
	if !ok {
		return domain.UtcInstant{}, "", fmt.Errorf(
			"resolve to utc: lat=%.4f lon=%.4f: %w",
			coord.Lat, coord.Lon, domain.ErrLocationUnresolvable,
		)
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return domain.UtcInstant{}, "", fmt.Errorf(
			"resolve to utc: zone %q has no rule data: %w",
			zone, domain.ErrLocationUnresolvable,
		)
	}

	// Split the fractional hour into whole clock fields before zone
	// conversion; minutes and seconds fold back into a decimal UT
	// hour afterward.
	clock := m.ClockDuration()
	hh := int(clock / time.Hour)
	mm := int(clock % time.Hour / time.Minute)
	ss := int(clock % time.Minute / time.Second)
	ns := int(clock % time.Second)

	local := time.Date(m.Year, time.Month(m.Month), m.Day, hh, mm, ss, ns, loc)
	u := local.UTC()

	hour := float64(u.Hour()) +
		float64(u.Minute())/60 +
		float64(u.Second())/3600 +
		float64(u.Nanosecond())/3.6e12

	instant := domain.UtcInstant{
		Year:  u.Year(),
		Month: int(u.Month()),
		Day:   u.Day(),
		Hour:  hour,
	}
	return instant, zone, nil
}
