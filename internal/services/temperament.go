package services

import (
	"fmt"
	"math"

	"natal-chart-service/internal/domain"
)

// Classical weighting: the luminaries and the ascendant dominate, the
// eight remaining bodies count once each. The node and Chiron carry
// no temperament weight.
var temperamentWeights = map[domain.Body]float64{
	domain.Sun:     3,
	domain.Moon:    2.5,
	domain.Mercury: 1,
	domain.Venus:   1,
	domain.Mars:    1,
	domain.Jupiter: 1,
	domain.Saturn:  1,
	domain.Uranus:  1,
	domain.Neptune: 1,
	domain.Pluto:   1,
}

const ascendantWeight = 3.0

// Temperament derives the normalized elemental distribution from a
// chart's resolved longitudes. Bodies or ascendant missing from the
// chart contribute zero and are excluded from the denominator, so the
// remaining weights renormalize over what resolved. Percentages are
// rounded to one decimal independently; the four values are not
// forced to sum to exactly 100.0.
func Temperament(chart *domain.Chart) (domain.ElementalWeights, error) {
	var totals [4]float64
	var denom float64

	for body, weight := range temperamentWeights {
		pos, ok := chart.Position(body)
		if !ok {
			continue
		}
		totals[domain.SignOf(pos.Longitude).Element()] += weight
		denom += weight
	}

	if chart.Houses != nil {
		totals[domain.SignOf(chart.Houses.Ascendant).Element()] += ascendantWeight
		denom += ascendantWeight
	}

	if denom == 0 {
		return domain.ElementalWeights{}, fmt.Errorf("temperament: %w", domain.ErrInsufficientData)
	}

	pct := func(e domain.Element) float64 {
		return math.Round(totals[e]/denom*1000) / 10
	}

	return domain.ElementalWeights{
		Fire:  pct(domain.Fire),
		Earth: pct(domain.Earth),
		Air:   pct(domain.Air),
		Water: pct(domain.Water),
	}, nil
}
