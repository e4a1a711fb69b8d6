package api

import (
	"net/http"

	"natal-chart-service/internal/api/handlers"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	locator ports.TimezoneLocator,
	eph ports.Ephemeris,
	archive ports.ChartArchive,
	ephePath string,
	defaultSystem domain.HouseSystem,
) http.Handler {
	mux := http.NewServeMux()

	chartHandler := &handlers.ChartHandler{
		Locator:       locator,
		Ephemeris:     eph,
		Archive:       archive,
		DefaultSystem: defaultSystem,
	}
	healthHandler := &handlers.HealthHandler{EphePath: ephePath}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/positions", chartHandler.Positions)
	mux.HandleFunc("/houses", chartHandler.Houses)
	mux.HandleFunc("/chart", chartHandler.Chart)
	mux.HandleFunc("/temperament", chartHandler.Temperament)

	return requestIDMiddleware(loggingMiddleware(mux))
}
