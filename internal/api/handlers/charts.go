package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"natal-chart-service/internal/api/dto"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/platform/obs"
	"natal-chart-service/internal/ports"
	"natal-chart-service/internal/services"
)

// ChartHandler exposes the chart computation endpoints. All handlers
// resolve one (civil moment, coordinate, house system) triple into a
// chart and shape the response per endpoint.
type ChartHandler struct {
	Locator       ports.TimezoneLocator
	Ephemeris     ports.Ephemeris
	Archive       ports.ChartArchive // optional
	DefaultSystem domain.HouseSystem
}

// parseChartQuery validates the shared query parameters. The returned
// message is empty on success and client-safe otherwise.
func (h *ChartHandler) parseChartQuery(r *http.Request) (services.BuildChartRequest, string) {
	var req services.BuildChartRequest

	q := r.URL.Query()

	// time.Parse rejects trailing text and signed components that a
	// field scan would let through.
	parsed, err := time.Parse("2006-01-02", q.Get("date"))
	if err != nil {
		return req, "date must be YYYY-MM-DD"
	}

	moment := domain.CivilMoment{Year: parsed.Year(), Month: int(parsed.Month()), Day: parsed.Day()}
	if t := q.Get("time"); t != "" {
		if strings.Contains(t, ":") {
			parts := strings.Split(t, ":")
			if len(parts) > 3 {
				return req, "time must be HH:MM[:SS] or a decimal hour"
			}
			fields := make([]int, 3)
			for i, p := range parts {
				v, err := strconv.Atoi(p)
				if err != nil {
					return req, "time must be HH:MM[:SS] or a decimal hour"
				}
				fields[i] = v
			}
			moment.Hour = float64(fields[0])
			moment.Minute = fields[1]
			moment.Second = fields[2]
		} else {
			hour, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return req, "time must be HH:MM[:SS] or a decimal hour"
			}
			moment.Hour = hour
		}
	}
	req.Moment = moment

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return req, "lat is required and must be a number"
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		return req, "lon is required and must be a number"
	}
	req.Coordinate = domain.GeoCoordinate{Lat: lat, Lon: lon}
	if !req.Coordinate.Valid() {
		return req, "lat must be in -90..90 and lon in -180..180"
	}

	// Invalid house systems fail here, before the oracle boundary.
	if raw := q.Get("system"); raw == "" {
		req.System = h.DefaultSystem
	} else {
		system, err := domain.ParseHouseSystem(raw)
		if err != nil {
			return req, "system must be one of whole, placidus, equal, koch"
		}
		req.System = system
	}

	return req, ""
}

// build runs the chart pipeline and maps chart-fatal errors onto HTTP
// status categories. Returns nil when a response was already written.
func (h *ChartHandler) build(w http.ResponseWriter, r *http.Request) *domain.Chart {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return nil
	}

	req, msg := h.parseChartQuery(r)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return nil
	}

	chart, err := services.BuildChart(r.Context(), req, h.Locator, h.Ephemeris)
	if err != nil {
		var ide *domain.InvalidDateError
		switch {
		case errors.As(err, &ide):
			writeError(w, r, http.StatusBadRequest, ide.Error())
		case errors.Is(err, domain.ErrLocationUnresolvable):
			writeError(w, r, http.StatusBadRequest, "no timezone covers the given coordinate")
		default:
			log.Printf("build chart failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return nil
	}

	if h.Archive != nil {
		if err := h.Archive.SaveChart(r.Context(), obs.RequestID(r.Context()), chart); err != nil {
			// Archiving is best-effort; the chart is still served.
			log.Printf("archive chart failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		}
	}
	return chart
}

// Chart serves the full chart: bodies, houses, resolved instant.
// Degraded queries appear as nulls in an otherwise-successful
// response.
func (h *ChartHandler) Chart(w http.ResponseWriter, r *http.Request) {
	chart := h.build(w, r)
	if chart == nil {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.FromChart(chart))
}

// Positions serves body positions only. With bodies as the only
// requested data, losing all of them is the chart's overall failure.
func (h *ChartHandler) Positions(w http.ResponseWriter, r *http.Request) {
	chart := h.build(w, r)
	if chart == nil {
		return
	}

	if len(chart.Positions) == 0 {
		log.Printf("all body queries failed: req_id=%s failures=%d", obs.RequestID(r.Context()), len(chart.Failures))
		writeError(w, r, http.StatusBadGateway, "ephemeris could not resolve any body")
		return
	}

	full := dto.FromChart(chart)
	writeJSON(w, r, http.StatusOK, dto.PositionsResponse{
		Date:      full.Date,
		Latitude:  full.Latitude,
		Longitude: full.Longitude,
		Zone:      full.Zone,
		UTC:       full.UTC,
		JulianDay: full.JulianDay,
		Bodies:    full.Bodies,
	})
}

// Houses serves cusps and angles only. With houses as the only
// requested data, a degraded cusp query is the chart's overall
// failure; the whole-sign default is never silently substituted.
func (h *ChartHandler) Houses(w http.ResponseWriter, r *http.Request) {
	chart := h.build(w, r)
	if chart == nil {
		return
	}

	if chart.Houses == nil {
		log.Printf("cusp query failed: req_id=%s system=%s", obs.RequestID(r.Context()), chart.System)
		writeError(w, r, http.StatusBadGateway, "ephemeris could not compute houses for this location")
		return
	}

	full := dto.FromChart(chart)
	writeJSON(w, r, http.StatusOK, dto.HousesOnlyResponse{
		Date:      full.Date,
		Latitude:  full.Latitude,
		Longitude: full.Longitude,
		Zone:      full.Zone,
		JulianDay: full.JulianDay,
		Houses:    full.Houses,
	})
}

// Temperament serves the elemental weighting derived from the chart,
// with the chart itself alongside so callers can audit the inputs.
func (h *ChartHandler) Temperament(w http.ResponseWriter, r *http.Request) {
	chart := h.build(w, r)
	if chart == nil {
		return
	}

	weights, err := services.Temperament(chart)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientData) {
			writeError(w, r, http.StatusUnprocessableEntity, "no chart inputs available for temperament")
			return
		}
		log.Printf("temperament failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TemperamentResponse{
		Temperament: dto.FromWeights(weights),
		Chart:       dto.FromChart(chart),
	})
}
