package ephemeris

import (
	"context"
	"sync/atomic"

	"natal-chart-service/internal/domain"
)

// Fake is an in-memory Ephemeris for tests and oracle-free runs.
// Positions and cusps are fixed during setup; individual queries can
// be forced to fail. Setup is not concurrency-safe, queries are.
type Fake struct {
	positions map[domain.Body]domain.BodyPosition
	cusps     *domain.HouseCusps
	bodyErrs  map[domain.Body]string
	cuspsErr  string
	calls     atomic.Int64
}

func NewFake() *Fake {
	return &Fake{
		positions: make(map[domain.Body]domain.BodyPosition),
		bodyErrs:  make(map[domain.Body]string),
	}
}

func (f *Fake) SetPosition(body domain.Body, longitude, speed float64) *Fake {
	f.positions[body] = domain.BodyPosition{
		Body:           body,
		Longitude:      domain.NormalizeLongitude(longitude),
		Distance:       1,
		SpeedLongitude: speed,
	}
	return f
}

// SetCusps installs equal houses counted from the given ascendant.
func (f *Fake) SetCusps(system domain.HouseSystem, ascendant, midheaven float64) *Fake {
	hc := domain.HouseCusps{
		System:    system,
		Ascendant: domain.NormalizeLongitude(ascendant),
		Midheaven: domain.NormalizeLongitude(midheaven),
	}
	for i := 0; i < 12; i++ {
		hc.Cusps[i] = domain.NormalizeLongitude(ascendant + float64(30*i))
	}
	f.cusps = &hc
	return f
}

func (f *Fake) FailBody(body domain.Body, reason string) *Fake {
	f.bodyErrs[body] = reason
	return f
}

func (f *Fake) FailCusps(reason string) *Fake {
	f.cuspsErr = reason
	f.cusps = nil
	return f
}

// Calls reports how many oracle queries were issued.
func (f *Fake) Calls() int { return int(f.calls.Load()) }

func (f *Fake) PositionOf(ctx context.Context, julianDay float64, body domain.Body) (domain.BodyPosition, error) {
	f.calls.Add(1)

	if reason, failed := f.bodyErrs[body]; failed {
		return domain.BodyPosition{}, &domain.EphemerisError{
			Scope: domain.QueryBody, Body: body, Reason: reason,
		}
	}
	pos, ok := f.positions[body]
	if !ok {
		return domain.BodyPosition{}, &domain.EphemerisError{
			Scope: domain.QueryBody, Body: body, Reason: "no data configured",
		}
	}
	return pos, nil
}

func (f *Fake) CuspsFor(ctx context.Context, julianDay float64, coord domain.GeoCoordinate, system domain.HouseSystem) (domain.HouseCusps, error) {
	f.calls.Add(1)

	if f.cusps == nil {
		reason := f.cuspsErr
		if reason == "" {
			reason = "no cusps configured"
		}
		return domain.HouseCusps{}, &domain.EphemerisError{
			Scope: domain.QueryCusps, System: system, Reason: reason,
		}
	}
	return *f.cusps, nil
}
