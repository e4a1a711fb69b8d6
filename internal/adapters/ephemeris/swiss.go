package ephemeris

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/mshafiee/swephgo"

	"natal-chart-service/internal/domain"
)

// Swiss Ephemeris ABI values, declared here so raw oracle codes never
// leak past this adapter.
const (
	seflgSwieph = 2
	seflgSpeed  = 256
)

var bodyIDs = map[domain.Body]int{
	domain.Sun:      0,
	domain.Moon:     1,
	domain.Mercury:  2,
	domain.Venus:    3,
	domain.Mars:     4,
	domain.Jupiter:  5,
	domain.Saturn:   6,
	domain.Uranus:   7,
	domain.Neptune:  8,
	domain.Pluto:    9,
	domain.TrueNode: 11,
	domain.Chiron:   15,
}

var systemCodes = map[domain.HouseSystem]int{
	domain.WholeSign: 'W',
	domain.Placidus:  'P',
	domain.Equal:     'E',
	domain.Koch:      'K',
}

// Swiss implements the Ephemeris port over the Swiss Ephemeris C
// library. The data path is process-wide, initialize-once state:
// construct a single instance at startup and Close it at shutdown.
// Queries themselves are read-only and safe to share across requests.
type Swiss struct {
	path string
}

func NewSwiss(ephePath string) (*Swiss, error) {
	if ephePath == "" {
		return nil, errors.New("swiss ephemeris: data path must be non-empty")
	}
	swephgo.SetEphePath([]byte(ephePath))
	return &Swiss{path: ephePath}, nil
}

// EphePath returns the configured ephemeris data directory.
func (s *Swiss) EphePath() string { return s.path }

// Close releases the library's file handles.
func (s *Swiss) Close() { swephgo.Close() }

func (s *Swiss) PositionOf(ctx context.Context, julianDay float64, body domain.Body) (domain.BodyPosition, error) {
	id, ok := bodyIDs[body]
	if !ok {
		return domain.BodyPosition{}, &domain.EphemerisError{
			Scope: domain.QueryBody, Body: body, Reason: "unsupported body",
		}
	}

	xx := make([]float64, 6)
	serr := make([]byte, 256)
	if rc := swephgo.CalcUt(julianDay, id, seflgSwieph|seflgSpeed, xx, serr); rc < 0 {
		return domain.BodyPosition{}, &domain.EphemerisError{
			Scope: domain.QueryBody, Body: body, Reason: cstring(serr),
		}
	}

	return domain.BodyPosition{
		Body:           body,
		Longitude:      domain.NormalizeLongitude(xx[0]),
		Latitude:       xx[1],
		Distance:       xx[2],
		SpeedLongitude: xx[3],
	}, nil
}

func (s *Swiss) CuspsFor(ctx context.Context, julianDay float64, coord domain.GeoCoordinate, system domain.HouseSystem) (domain.HouseCusps, error) {
	code, ok := systemCodes[system]
	if !ok {
		return domain.HouseCusps{}, &domain.EphemerisError{
			Scope: domain.QueryCusps, System: system, Reason: "unsupported house system",
		}
	}

	cusps := make([]float64, 13)
	ascmc := make([]float64, 10)
	// The library refuses some (latitude, system) combinations, e.g.
	// Placidus inside the polar circles. That surfaces as a cusp
	// failure; it is never downgraded to another system here.
	if rc := swephgo.Houses(julianDay, coord.Lat, coord.Lon, code, cusps, ascmc); rc < 0 {
		return domain.HouseCusps{}, &domain.EphemerisError{
			Scope: domain.QueryCusps, System: system,
			Reason: fmt.Sprintf("house computation failed at lat=%.4f lon=%.4f", coord.Lat, coord.Lon),
		}
	}

	hc := domain.HouseCusps{
		System:    system,
		Ascendant: domain.NormalizeLongitude(ascmc[0]),
		Midheaven: domain.NormalizeLongitude(ascmc[1]),
	}
	for i := 0; i < 12; i++ {
		hc.Cusps[i] = domain.NormalizeLongitude(cusps[i+1])
	}
	return hc, nil
}

// cstring converts the library's NUL-terminated diagnostic buffer.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	s := string(bytes.TrimSpace(b))
	if s == "" {
		return "calculation failed"
	}
	return s
}
