package timezone

import (
	"fmt"

	"github.com/ringsaturn/tzf"

	"natal-chart-service/internal/domain"
)

// TZFLocator resolves coordinates to IANA zone names with tzf's
// embedded polygon dataset. The finder is immutable after
// construction and safe for concurrent lookups; build one at startup
// and share it.
type TZFLocator struct {
	finder tzf.F
}

func NewTZFLocator() (*TZFLocator, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("timezone locator: load polygon dataset: %w", err)
	}
	return &TZFLocator{finder: finder}, nil
}

// FindZone returns the zone covering coord. An empty lookup means no
// zone covers the point; callers must not substitute UTC.
func (l *TZFLocator) FindZone(coord domain.GeoCoordinate) (string, bool) {
	name := l.finder.GetTimezoneName(coord.Lon, coord.Lat)
	if name == "" {
		return "", false
	}
	return name, true
}
