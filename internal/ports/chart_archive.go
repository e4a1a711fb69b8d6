package ports

import (
	"context"

	"natal-chart-service/internal/domain"
)

// Port: write-only audit log of built charts.
//
// Archived charts are never read back into the compute path; every
// request recomputes from scratch.
type ChartArchive interface {
	SaveChart(ctx context.Context, requestID string, chart *domain.Chart) error
}
