package timezone

import "natal-chart-service/internal/domain"

// StaticLocator answers every lookup with one fixed zone. An empty
// Zone makes every coordinate unresolvable. Test fixture.
type StaticLocator struct {
	Zone string
}

func (l StaticLocator) FindZone(coord domain.GeoCoordinate) (string, bool) {
	if l.Zone == "" {
		return "", false
	}
	return l.Zone, true
}
