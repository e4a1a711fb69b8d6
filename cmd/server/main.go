package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"natal-chart-service/internal/adapters/archive"
	"natal-chart-service/internal/adapters/ephemeris"
	"natal-chart-service/internal/adapters/timezone"
	"natal-chart-service/internal/api"
	"natal-chart-service/internal/config"
	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/platform/db"
	"natal-chart-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Swiss Ephemeris, tzf, optional Postgres
// archive) behind ports and starts the HTTP server. The ephemeris
// path and the zone polygon dataset are initialize-once, read-only
// process state shared by every request.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ephePath := config.Get("EPHE_PATH", "./ephe")
	port := config.Get("PORT", "8080")

	defaultSystem, err := domain.ParseHouseSystem(config.Get("DEFAULT_HOUSE_SYSTEM", "whole"))
	if err != nil {
		log.Fatalf("DEFAULT_HOUSE_SYSTEM: %v", err)
	}

	eph, err := ephemeris.NewSwiss(ephePath)
	if err != nil {
		log.Fatal(err)
	}
	defer eph.Close()

	locator, err := timezone.NewTZFLocator()
	if err != nil {
		log.Fatal(err)
	}

	// The chart archive is optional: without DATABASE_URL every chart
	// is served and forgotten.
	var chartArchive ports.ChartArchive
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		conn, err := openArchive(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		chartArchive = archive.NewPGChartArchive(conn)
		log.Println("Chart archive enabled")
	}

	router := api.NewRouter(locator, eph, chartArchive, ephePath, defaultSystem)

	log.Printf("Server listening addr=:%s ephe_path=%s default_system=%s", port, ephePath, defaultSystem)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openArchive(databaseURL string) (*sql.DB, error) {
	conn, err := db.Open(databaseURL)
	if err != nil {
		return nil, err
	}

	// Ensure the schema exists on startup for local runs.
	if err := archive.InitSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}
