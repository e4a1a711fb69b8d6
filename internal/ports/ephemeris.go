package ports

import (
	"context"

	"natal-chart-service/internal/domain"
)

// Port: read-only boundary to the external ephemeris oracle.
//
// Implementations surface every oracle-reported failure as a
// *domain.EphemerisError, never retry, and never substitute default
// values. Each call is a pure function of its arguments plus the
// oracle's initialize-once data files, so concurrent queries need no
// coordination.
type Ephemeris interface {
	// Return the ecliptic position of one body at a Julian Day.
	PositionOf(ctx context.Context, julianDay float64, body domain.Body) (domain.BodyPosition, error)
	// Return houses and angles for one (Julian Day, coordinate, system) triple.
	CuspsFor(ctx context.Context, julianDay float64, coord domain.GeoCoordinate, system domain.HouseSystem) (domain.HouseCusps, error)
}
