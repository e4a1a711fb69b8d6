package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"natal-chart-service/internal/domain"
	"natal-chart-service/internal/platform/obs"
)

// Postgres-backed implementation of the ChartArchive port. Insert
// only; archived rows never feed back into chart computation.
type PGChartArchive struct{ DB *sql.DB }

func NewPGChartArchive(db *sql.DB) *PGChartArchive {
	return &PGChartArchive{DB: db}
}

// Initialize the archive schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createChartsQuery := `
	CREATE TABLE IF NOT EXISTS charts (
		request_id   TEXT PRIMARY KEY,
		civil_date   TEXT NOT NULL,
		civil_hour   DOUBLE PRECISION NOT NULL,
		latitude     DOUBLE PRECISION NOT NULL,
		longitude    DOUBLE PRECISION NOT NULL,
		zone         TEXT NOT NULL,
		house_system TEXT NOT NULL,
		julian_day   DOUBLE PRECISION NOT NULL,
		chart        JSONB NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_charts_julian_day ON charts (julian_day);
	`

	if _, err := tx.Exec(createChartsQuery); err != nil {
		return fmt.Errorf("init schema: create charts table: %w", err)
	}
	if _, err := tx.Exec(createIndexQuery); err != nil {
		return fmt.Errorf("init schema: create julian day index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}
	return nil
}

// SaveChart records one built chart keyed by its request id.
func (a *PGChartArchive) SaveChart(ctx context.Context, requestID string, chart *domain.Chart) (err error) {
	defer obs.Time(ctx, "archive.SaveChart")(&err)

	if a.DB == nil {
		return errors.New("chart archive: DB is nil")
	}
	if chart == nil {
		return errors.New("chart archive: chart is nil")
	}

	payload, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("save chart: marshal chart: %w", err)
	}

	civilDate := fmt.Sprintf("%04d-%02d-%02d", chart.Moment.Year, chart.Moment.Month, chart.Moment.Day)
	civilHour := chart.Moment.ClockDuration().Hours()

	query := `
	INSERT INTO charts (request_id, civil_date, civil_hour, latitude, longitude, zone, house_system, julian_day, chart)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = a.DB.ExecContext(ctx, query,
		requestID,
		civilDate,
		civilHour,
		chart.Coordinate.Lat,
		chart.Coordinate.Lon,
		chart.Zone,
		chart.System.String(),
		chart.JulianDay,
		payload,
	)
	if err != nil {
		return fmt.Errorf("save chart: insert row request_id=%s: %w", requestID, err)
	}
	return nil
}
