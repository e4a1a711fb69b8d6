package domain

import "fmt"

// HouseSystem is the closed set of supported house computations.
// Invalid systems fail request parsing before reaching the oracle.
type HouseSystem int

const (
	WholeSign HouseSystem = iota
	Placidus
	Equal
	Koch
)

var houseSystemNames = [...]string{"whole", "placidus", "equal", "koch"}

func (h HouseSystem) String() string {
	if h < WholeSign || int(h) >= len(houseSystemNames) {
		return "unknown"
	}
	return houseSystemNames[h]
}

// ParseHouseSystem maps a request value to a HouseSystem. The empty
// string selects the whole-sign default.
func ParseHouseSystem(s string) (HouseSystem, error) {
	switch s {
	case "", "whole":
		return WholeSign, nil
	case "placidus":
		return Placidus, nil
	case "equal":
		return Equal, nil
	case "koch":
		return Koch, nil
	}
	return WholeSign, fmt.Errorf("unknown house system %q", s)
}

// BodyPosition is one body's ecliptic position at a single Julian Day.
// Recomputed per chart, never shared across instants.
type BodyPosition struct {
	Body           Body
	Longitude      float64 // ecliptic longitude, normalized to [0, 360)
	Latitude       float64 // ecliptic latitude, degrees
	Distance       float64 // AU
	SpeedLongitude float64 // degrees/day, signed
}

// Retrograde reports apparent backward motion.
func (p BodyPosition) Retrograde() bool { return p.SpeedLongitude < 0 }

// HouseCusps holds the angles and 12 cusps for exactly one
// (JulianDay, GeoCoordinate, HouseSystem) triple, in ecliptic degrees.
type HouseCusps struct {
	System    HouseSystem
	Ascendant float64
	Midheaven float64
	Cusps     [12]float64
}

// QueryFailure records one degraded oracle query for logging and
// traceability. Failures never abort sibling queries.
type QueryFailure struct {
	Scope  QueryScope
	Body   Body
	Reason string
}

// Chart is a coherent snapshot: every position and cusp in it shares
// one JulianDay and one GeoCoordinate. Bodies whose query failed are
// absent from Positions; Houses is nil when the cusp query failed.
// A chart with no positions and no houses is still a valid result.
type Chart struct {
	Moment     CivilMoment
	Coordinate GeoCoordinate
	System     HouseSystem
	Zone       string
	UTC        UtcInstant
	JulianDay  float64
	Positions  map[Body]BodyPosition
	Houses     *HouseCusps
	Failures   []QueryFailure
}

// Position returns the resolved position for b, if its query succeeded.
func (c *Chart) Position(b Body) (BodyPosition, bool) {
	p, ok := c.Positions[b]
	return p, ok
}
