package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/ports"
)

type BuildChartRequest struct {
	Moment     domain.CivilMoment
	Coordinate domain.GeoCoordinate
	System     domain.HouseSystem
}

type bodyResult struct {
	body domain.Body
	pos  domain.BodyPosition
	err  error
}

// BuildChart produces one coherent chart snapshot: resolve the civil
// moment to UT, derive the Julian Day, query every body and the house
// cusps for that single instant.
//
// Failure policy: timezone resolution and calendar validation are
// chart-fatal and abort before any oracle call. Individual oracle
// queries degrade instead: a failed body query leaves that body
// absent, a failed cusp query leaves Houses nil, and neither aborts
// sibling queries. A chart with nothing resolved is still a valid
// result.
func BuildChart(
	ctx context.Context,
	req BuildChartRequest,
	locator ports.TimezoneLocator,
	eph ports.Ephemeris,
) (*domain.Chart, error) {
	utc, zone, err := ResolveToUTC(req.Moment, req.Coordinate, locator)
	if err != nil {
		return nil, fmt.Errorf("build chart: %w", err)
	}

	jd, err := ToJulianDay(utc)
	if err != nil {
		return nil, fmt.Errorf("build chart: %w", err)
	}

	// One independent query per body, fanned out over a bounded set
	// of workers with per-query result capture. Cancellation stops
	// the remaining queries for this request only; it shares nothing
	// with other requests.
	sem := make(chan struct{}, 4)
	results := make(chan bodyResult, len(domain.ChartBodies))
	var wg sync.WaitGroup

	for _, b := range domain.ChartBodies {
		wg.Add(1)
		go func(b domain.Body) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				results <- bodyResult{body: b, err: err}
				return
			}

			pos, err := eph.PositionOf(ctx, jd, b)
			results <- bodyResult{body: b, pos: pos, err: err}
		}(b)
	}

	wg.Wait()
	close(results)

	collected := make(map[domain.Body]bodyResult, len(domain.ChartBodies))
	for r := range results {
		collected[r.body] = r
	}

	chart := &domain.Chart{
		Moment:     req.Moment,
		Coordinate: req.Coordinate,
		System:     req.System,
		Zone:       zone,
		UTC:        utc,
		JulianDay:  jd,
		Positions:  make(map[domain.Body]domain.BodyPosition, len(domain.ChartBodies)),
	}

	// Iterate the fixed body order so Failures is deterministic and
	// identical inputs yield identical charts.
	for _, b := range domain.ChartBodies {
		r := collected[b]
		if r.err != nil {
			log.Printf("body query degraded: body=%s jd=%.6f err=%v", b, jd, r.err)
			chart.Failures = append(chart.Failures, domain.QueryFailure{
				Scope:  domain.QueryBody,
				Body:   b,
				Reason: failureReason(r.err),
			})
			continue
		}
		chart.Positions[b] = r.pos
	}

	// House geometry depends on the local horizon: the cusp query
	// uses the original coordinate, not anything derived during time
	// resolution.
	cusps, err := eph.CuspsFor(ctx, jd, req.Coordinate, req.System)
	if err != nil {
		log.Printf("cusp query degraded: system=%s jd=%.6f err=%v", req.System, jd, err)
		chart.Failures = append(chart.Failures, domain.QueryFailure{
			Scope:  domain.QueryCusps,
			Reason: failureReason(err),
		})
	} else {
		chart.Houses = &cusps
	}

	return chart, nil
}

func failureReason(err error) string {
	var qe *domain.EphemerisError
	if errors.As(err, &qe) {
		return qe.Reason
	}
	return err.Error()
}
