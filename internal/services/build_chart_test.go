package services

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	_ "time/tzdata"

	"natal-chart-service/internal/adapters/ephemeris"
	"natal-chart-service/internal/adapters/timezone"
	"natal-chart-service/internal/domain"
)

func fullFake() *ephemeris.Fake {
	fake := ephemeris.NewFake()
	for i, b := range domain.ChartBodies {
		fake.SetPosition(b, float64(i*25), 1)
	}
	fake.SetCusps(domain.WholeSign, 310, 220)
	return fake
}

func chartRequest() BuildChartRequest {
	return BuildChartRequest{
		Moment:     domain.CivilMoment{Year: 2000, Month: 1, Day: 1, Hour: 12},
		Coordinate: domain.GeoCoordinate{Lat: 0, Lon: 0},
		System:     domain.WholeSign,
	}
}

func TestBuildChartComplete(t *testing.T) {
	fake := fullFake()
	locator := timezone.StaticLocator{Zone: "UTC"}

	chart, err := BuildChart(context.Background(), chartRequest(), locator, fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chart.Positions) != len(domain.ChartBodies) {
		t.Fatalf("got %d positions, want %d", len(chart.Positions), len(domain.ChartBodies))
	}
	if chart.Houses == nil {
		t.Fatal("houses missing")
	}
	if len(chart.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", chart.Failures)
	}
	if chart.Zone != "UTC" {
		t.Errorf("zone = %q, want UTC", chart.Zone)
	}
	if math.Abs(chart.JulianDay-2451545.0) > 1e-6 {
		t.Errorf("julian day = %f, want 2451545.0", chart.JulianDay)
	}

	// The chart echoes its inputs.
	if chart.Moment != chartRequest().Moment || chart.Coordinate != chartRequest().Coordinate {
		t.Error("chart does not echo request inputs")
	}

	// One query per body plus one cusp query.
	if fake.Calls() != len(domain.ChartBodies)+1 {
		t.Errorf("oracle calls = %d, want %d", fake.Calls(), len(domain.ChartBodies)+1)
	}
}

func TestBuildChartIdempotent(t *testing.T) {
	fake := fullFake()
	locator := timezone.StaticLocator{Zone: "Australia/Sydney"}
	req := BuildChartRequest{
		Moment:     domain.CivilMoment{Year: 1987, Month: 4, Day: 12, Hour: 23, Minute: 30},
		Coordinate: domain.GeoCoordinate{Lat: -33.87, Lon: 151.21},
		System:     domain.Placidus,
	}

	a, err := BuildChart(context.Background(), req, locator, fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := BuildChart(context.Background(), req, locator, fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different charts:\n%+v\n%+v", a, b)
	}
}

func TestBuildChartDegradesFailedBody(t *testing.T) {
	fake := fullFake().FailBody(domain.Chiron, "no data file for chiron")
	locator := timezone.StaticLocator{Zone: "UTC"}

	chart, err := BuildChart(context.Background(), chartRequest(), locator, fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := chart.Position(domain.Chiron); ok {
		t.Error("failed body present in positions")
	}
	if len(chart.Positions) != len(domain.ChartBodies)-1 {
		t.Errorf("got %d positions, want %d", len(chart.Positions), len(domain.ChartBodies)-1)
	}
	if chart.Houses == nil {
		t.Error("cusp query aborted by sibling body failure")
	}

	if len(chart.Failures) != 1 {
		t.Fatalf("failures = %v, want exactly one", chart.Failures)
	}
	f := chart.Failures[0]
	if f.Scope != domain.QueryBody || f.Body != domain.Chiron || f.Reason != "no data file for chiron" {
		t.Errorf("failure = %+v", f)
	}
}

func TestBuildChartDegradesFailedCusps(t *testing.T) {
	fake := fullFake().FailCusps("placidus undefined at polar latitude")
	locator := timezone.StaticLocator{Zone: "UTC"}

	req := chartRequest()
	req.System = domain.Placidus
	chart, err := BuildChart(context.Background(), req, locator, fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if chart.Houses != nil {
		t.Error("houses present despite cusp failure")
	}
	if len(chart.Positions) != len(domain.ChartBodies) {
		t.Error("body queries degraded by cusp failure")
	}
	if len(chart.Failures) != 1 || chart.Failures[0].Scope != domain.QueryCusps {
		t.Errorf("failures = %v, want one cusps failure", chart.Failures)
	}
}

func TestBuildChartAllQueriesFailedStillValid(t *testing.T) {
	fake := ephemeris.NewFake().FailCusps("engine down")
	for _, b := range domain.ChartBodies {
		fake.FailBody(b, "engine down")
	}

	chart, err := BuildChart(context.Background(), chartRequest(), timezone.StaticLocator{Zone: "UTC"}, fake)
	if err != nil {
		t.Fatalf("total oracle failure must still build a chart, got: %v", err)
	}
	if len(chart.Positions) != 0 || chart.Houses != nil {
		t.Error("degraded chart carries data")
	}
	if len(chart.Failures) != len(domain.ChartBodies)+1 {
		t.Errorf("failures = %d, want %d", len(chart.Failures), len(domain.ChartBodies)+1)
	}
}

func TestBuildChartFatalBeforeOracle(t *testing.T) {
	fake := fullFake()

	// Unresolvable location aborts the build with no oracle calls.
	req := chartRequest()
	_, err := BuildChart(context.Background(), req, timezone.StaticLocator{}, fake)
	if !errors.Is(err, domain.ErrLocationUnresolvable) {
		t.Fatalf("error %v is not ErrLocationUnresolvable", err)
	}
	if fake.Calls() != 0 {
		t.Errorf("oracle queried %d times before fatal validation", fake.Calls())
	}

	// Invalid calendar date likewise.
	req.Moment = domain.CivilMoment{Year: 2000, Month: 13, Day: 1}
	_, err = BuildChart(context.Background(), req, timezone.StaticLocator{Zone: "UTC"}, fake)
	var ide *domain.InvalidDateError
	if !errors.As(err, &ide) {
		t.Fatalf("error %v is not *InvalidDateError", err)
	}
	if fake.Calls() != 0 {
		t.Errorf("oracle queried %d times before fatal validation", fake.Calls())
	}
}
