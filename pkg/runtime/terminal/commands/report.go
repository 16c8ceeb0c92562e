package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/fmcg-atlas/pkg/adapters"
	"github.com/de-tools/fmcg-atlas/pkg/models/api"
	"github.com/de-tools/fmcg-atlas/pkg/models/domain"
)

const (
	ReportDashboard = "dashboard"
	ReportForecast  = "forecast"
)

// DefaultTimeout bounds a single command, report loading included.
const DefaultTimeout = 60 * time.Second

// Views builds the dashboard and forecast views.
type Views interface {
	Dashboard(ctx context.Context) (*api.DashboardView, error)
	Forecasting(ctx context.Context) (*api.ForecastView, error)
}

// ViewsFunc resolves the views when a command runs, after global flags
// have been parsed.
type ViewsFunc func() Views

// BuildReport renders the named view as a flat report.
func BuildReport(ctx context.Context, views Views, name string) (*domain.Report, error) {
	switch name {
	case ReportDashboard:
		view, err := views.Dashboard(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build dashboard: %w", err)
		}
		report := adapters.MapDashboardViewToReport(view)
		return &report, nil
	case ReportForecast:
		view, err := views.Forecasting(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build forecast: %w", err)
		}
		report := adapters.MapForecastViewToReport(view)
		return &report, nil
	default:
		return nil, fmt.Errorf("unknown report %q (want %s or %s)", name, ReportDashboard, ReportForecast)
	}
}
