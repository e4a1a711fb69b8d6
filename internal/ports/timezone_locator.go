package ports

import "natal-chart-service/internal/domain"

// Port: coordinate to IANA zone name lookup.
//
// ok is false when no zone covers the coordinate (open ocean,
// unmapped territory). That is a first-class failure for callers,
// never a cue to assume UTC.
type TimezoneLocator interface {
	FindZone(coord domain.GeoCoordinate) (zone string, ok bool)
}
