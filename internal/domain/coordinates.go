package domain

// Immutable geographic coordinates in decimal degrees.
// Latitude is positive north, longitude positive east.
//
// The same value feeds both timezone resolution and house-cusp
// geometry; a chart built from two different coordinates is
// internally inconsistent.
type GeoCoordinate struct {
	Lat float64
	Lon float64
}

// Valid reports whether the coordinate lies inside the WGS84 range.
func (c GeoCoordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}
