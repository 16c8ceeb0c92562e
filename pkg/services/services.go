package services

import (
	"context"
	"fmt"

	"github.com/de-tools/fmcg-atlas/pkg/models/api"
	"github.com/de-tools/fmcg-atlas/pkg/models/report"
	"github.com/de-tools/fmcg-atlas/pkg/services/config"
	"github.com/de-tools/fmcg-atlas/pkg/services/forecast"
	"github.com/de-tools/fmcg-atlas/pkg/services/insights"
	"github.com/de-tools/fmcg-atlas/pkg/store/cache"
	"github.com/de-tools/fmcg-atlas/pkg/store/source"
)

// Services is the set of adapters shared by one process. Each report has
// exactly one cache slot, created here.
type Services struct {
	Insights *insights.Service
	Forecast *forecast.Service
}

func New(ctx context.Context, cfg config.SourceConfig) (*Services, error) {
	src, err := source.New(ctx, source.Settings{
		Kind:    cfg.Kind,
		BaseURL: cfg.BaseURL,
		Root:    cfg.Root,
		Bucket:  cfg.Bucket,
		Prefix:  cfg.Prefix,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report source: %w", err)
	}
	return NewWithSource(src, cfg), nil
}

func NewWithSource(src source.Source, cfg config.SourceConfig) *Services {
	return &Services{
		Insights: insights.NewService(
			src,
			cache.NewSlot[report.InsightsReport](report.Insights),
			cache.NewSlot[report.InsightsReport](report.Insights+"-prior"),
			insights.Settings{Timeout: cfg.Timeout, PriorPath: cfg.PriorInsightsPath},
		),
		Forecast: forecast.NewService(
			src,
			cache.NewSlot[report.ForecastReport](report.Forecast),
			cfg.Timeout,
		),
	}
}

func (s *Services) Dashboard(ctx context.Context) (*api.DashboardView, error) {
	return s.Insights.Dashboard(ctx)
}

func (s *Services) Forecasting(ctx context.Context) (*api.ForecastView, error) {
	return s.Forecast.Forecasting(ctx)
}
