package services

import (
	"errors"
	"math"
	"testing"

	"natal-chart-service/internal/domain"
)

// testChart places every weighted body in a known sign:
// Fire = Sun(3) + Mars(1) + Neptune(1) = 5
// Earth = Moon(2.5) + Jupiter(1) + Pluto(1) = 4.5
// Air = Mercury(1) + Saturn(1) + Asc(3) = 5
// Water = Venus(1) + Uranus(1) = 2
func testChart() *domain.Chart {
	lons := map[domain.Body]float64{
		domain.Sun:     10,  // Aries, Fire
		domain.Moon:    40,  // Taurus, Earth
		domain.Mercury: 70,  // Gemini, Air
		domain.Venus:   100, // Cancer, Water
		domain.Mars:    130, // Leo, Fire
		domain.Jupiter: 160, // Virgo, Earth
		domain.Saturn:  190, // Libra, Air
		domain.Uranus:  220, // Scorpio, Water
		domain.Neptune: 250, // Sagittarius, Fire
		domain.Pluto:   280, // Capricorn, Earth
	}

	chart := &domain.Chart{Positions: make(map[domain.Body]domain.BodyPosition)}
	for b, lon := range lons {
		chart.Positions[b] = domain.BodyPosition{Body: b, Longitude: lon}
	}
	chart.Houses = &domain.HouseCusps{Ascendant: 310} // Aquarius, Air
	return chart
}

func TestTemperamentFullChart(t *testing.T) {
	weights, err := Temperament(testChart())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Total weight 16.5.
	expect := domain.ElementalWeights{Fire: 30.3, Earth: 27.3, Air: 30.3, Water: 12.1}
	if weights != expect {
		t.Errorf("weights = %+v, want %+v", weights, expect)
	}

	sum := weights.Fire + weights.Earth + weights.Air + weights.Water
	if math.Abs(sum-100) > 0.4 {
		t.Errorf("weights sum to %v, want 100 within rounding slack", sum)
	}
}

func TestTemperamentMissingBodyRenormalizes(t *testing.T) {
	chart := testChart()
	delete(chart.Positions, domain.Moon)

	weights, err := Temperament(chart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Denominator drops to 14; the remaining weights renormalize.
	expect := domain.ElementalWeights{Fire: 35.7, Earth: 14.3, Air: 35.7, Water: 14.3}
	if weights != expect {
		t.Errorf("weights = %+v, want %+v", weights, expect)
	}

	sum := weights.Fire + weights.Earth + weights.Air + weights.Water
	if math.Abs(sum-100) > 0.4 {
		t.Errorf("weights sum to %v, want 100 within rounding slack", sum)
	}
}

func TestTemperamentMissingAscendant(t *testing.T) {
	chart := testChart()
	chart.Houses = nil

	weights, err := Temperament(chart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Air loses the ascendant's 3.0; denominator is 13.5.
	if math.Abs(weights.Air-14.8) > 1e-9 {
		t.Errorf("air = %v, want 14.8", weights.Air)
	}
}

func TestTemperamentIgnoresNodeAndChiron(t *testing.T) {
	chart := testChart()
	// Park both in Cancer; Water must not move.
	chart.Positions[domain.TrueNode] = domain.BodyPosition{Body: domain.TrueNode, Longitude: 95}
	chart.Positions[domain.Chiron] = domain.BodyPosition{Body: domain.Chiron, Longitude: 96}

	weights, err := Temperament(chart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(weights.Water-12.1) > 1e-9 {
		t.Errorf("water = %v, want 12.1 (node/chiron must carry no weight)", weights.Water)
	}
}

func TestTemperamentInsufficientData(t *testing.T) {
	// Only raised when every weighted input is missing.
	empty := &domain.Chart{Positions: map[domain.Body]domain.BodyPosition{}}
	_, err := Temperament(empty)
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("error %v is not ErrInsufficientData", err)
	}

	// A lone ascendant is already sufficient.
	ascOnly := &domain.Chart{
		Positions: map[domain.Body]domain.BodyPosition{},
		Houses:    &domain.HouseCusps{Ascendant: 5},
	}
	weights, err := Temperament(ascOnly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weights.Fire != 100 {
		t.Errorf("fire = %v, want 100", weights.Fire)
	}

	// A lone body likewise.
	sunOnly := &domain.Chart{
		Positions: map[domain.Body]domain.BodyPosition{
			domain.Sun: {Body: domain.Sun, Longitude: 100},
		},
	}
	weights, err = Temperament(sunOnly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weights.Water != 100 {
		t.Errorf("water = %v, want 100", weights.Water)
	}
}
