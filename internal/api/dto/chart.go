package dto

import (
	"fmt"

	"natal-chart-service/internal/domain"
)

type UtcResponse struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Day   int     `json:"day"`
	Hour  float64 `json:"hour"`
}

type PositionResponse struct {
	Longitude      float64 `json:"longitude"`
	Latitude       float64 `json:"latitude"`
	Distance       float64 `json:"distance"`
	SpeedLongitude float64 `json:"speed_longitude"`
	Retrograde     bool    `json:"retrograde"`
	Sign           string  `json:"sign"`
	SignDegree     float64 `json:"sign_degree"`
}

type HousesResponse struct {
	System        string      `json:"system"`
	Ascendant     float64     `json:"ascendant"`
	AscendantSign string      `json:"ascendant_sign"`
	Midheaven     float64     `json:"midheaven"`
	Cusps         [12]float64 `json:"cusps"`
}

// ChartResponse echoes the request inputs alongside the resolved
// instant and query results. Bodies whose query degraded appear as
// explicit nulls, as does a degraded house computation.
type ChartResponse struct {
	Date      string                       `json:"date"`
	Latitude  float64                      `json:"latitude"`
	Longitude float64                      `json:"longitude"`
	Zone      string                       `json:"zone"`
	UTC       UtcResponse                  `json:"utc"`
	JulianDay float64                      `json:"julian_day"`
	Bodies    map[string]*PositionResponse `json:"bodies"`
	Houses    *HousesResponse              `json:"houses"`
}

type PositionsResponse struct {
	Date      string                       `json:"date"`
	Latitude  float64                      `json:"latitude"`
	Longitude float64                      `json:"longitude"`
	Zone      string                       `json:"zone"`
	UTC       UtcResponse                  `json:"utc"`
	JulianDay float64                      `json:"julian_day"`
	Bodies    map[string]*PositionResponse `json:"bodies"`
}

type HousesOnlyResponse struct {
	Date      string          `json:"date"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Zone      string          `json:"zone"`
	JulianDay float64         `json:"julian_day"`
	Houses    *HousesResponse `json:"houses"`
}

type ElementsResponse struct {
	Fire  float64 `json:"fire"`
	Earth float64 `json:"earth"`
	Air   float64 `json:"air"`
	Water float64 `json:"water"`
}

type TemperamentResponse struct {
	Temperament ElementsResponse `json:"temperament"`
	Chart       ChartResponse    `json:"chart"`
}

// FromChart maps a domain chart onto the wire shape shared by the
// HTTP handlers and the CLI.
func FromChart(c *domain.Chart) ChartResponse {
	res := ChartResponse{
		Date:      civilDate(c.Moment),
		Latitude:  c.Coordinate.Lat,
		Longitude: c.Coordinate.Lon,
		Zone:      c.Zone,
		UTC: UtcResponse{
			Year:  c.UTC.Year,
			Month: c.UTC.Month,
			Day:   c.UTC.Day,
			Hour:  c.UTC.Hour,
		},
		JulianDay: c.JulianDay,
		Bodies:    make(map[string]*PositionResponse, len(domain.ChartBodies)),
	}

	for _, b := range domain.ChartBodies {
		pos, ok := c.Position(b)
		if !ok {
			res.Bodies[b.String()] = nil
			continue
		}
		res.Bodies[b.String()] = FromPosition(pos)
	}

	if c.Houses != nil {
		res.Houses = FromHouses(*c.Houses)
	}
	return res
}

func FromPosition(p domain.BodyPosition) *PositionResponse {
	return &PositionResponse{
		Longitude:      p.Longitude,
		Latitude:       p.Latitude,
		Distance:       p.Distance,
		SpeedLongitude: p.SpeedLongitude,
		Retrograde:     p.Retrograde(),
		Sign:           domain.SignOf(p.Longitude).String(),
		SignDegree:     domain.DegreeInSign(p.Longitude),
	}
}

func FromHouses(h domain.HouseCusps) *HousesResponse {
	return &HousesResponse{
		System:        h.System.String(),
		Ascendant:     h.Ascendant,
		AscendantSign: domain.SignOf(h.Ascendant).String(),
		Midheaven:     h.Midheaven,
		Cusps:         h.Cusps,
	}
}

func FromWeights(w domain.ElementalWeights) ElementsResponse {
	return ElementsResponse{Fire: w.Fire, Earth: w.Earth, Air: w.Air, Water: w.Water}
}

func civilDate(m domain.CivilMoment) string {
	return fmt.Sprintf("%04d-%02d-%02d", m.Year, m.Month, m.Day)
}
