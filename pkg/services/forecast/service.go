package forecast

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/fmcg-atlas/pkg/adapters"
	"github.com/de-tools/fmcg-atlas/pkg/models/api"
	"github.com/de-tools/fmcg-atlas/pkg/models/report"
	"github.com/de-tools/fmcg-atlas/pkg/services/section"
	"github.com/de-tools/fmcg-atlas/pkg/store/cache"
	"github.com/de-tools/fmcg-atlas/pkg/store/source"
)

const Title = "Predictive Analytics & Forecasting"

const DefaultTimeout = 30 * time.Second

type Service struct {
	source  source.Source
	slot    *cache.Slot[report.ForecastReport]
	timeout time.Duration
}

func NewService(src source.Source, slot *cache.Slot[report.ForecastReport], timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		source:  src,
		slot:    slot,
		timeout: timeout,
	}
}

// Load returns the forecast report, fetching it on first use.
func (s *Service) Load(ctx context.Context) (*report.ForecastReport, error) {
	return s.slot.Get(ctx, s.fetch)
}

func (s *Service) fetch(ctx context.Context) (*report.ForecastReport, error) {
	logger := zerolog.Ctx(ctx).With().Str("report", report.Forecast).Str("path", source.ForecastPath).Logger()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	logger.Info().Msg("loading report")

	data, err := s.source.Fetch(ctx, source.ForecastPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch report")
		return nil, err
	}
	r, err := report.DecodeForecast(data)
	if err != nil {
		logger.Error().Err(err).Msg("report failed validation")
		return nil, err
	}

	logger.Info().
		Dur("elapsed", time.Since(start)).
		Str("period", r.ForecastPeriod).
		Int("products", len(r.InventoryForecast)).
		Msg("report loaded")
	return r, nil
}

// Forecasting assembles the forecasting page with every section derived in
// isolation.
func (s *Service) Forecasting(ctx context.Context) (*api.ForecastView, error) {
	r, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	view := &api.ForecastView{Title: Title, Period: r.ForecastPeriod}
	c := section.NewCollector(ctx)
	c.Run(api.SectionHeadline, func() error {
		view.Headline = adapters.MapForecastHeadline(r)
		return nil
	})
	c.Run(api.SectionAccuracy, func() error {
		view.Accuracy = adapters.MapAccuracyMetrics(r)
		return nil
	})
	c.Run(api.SectionRevenueChart, func() error {
		view.RevenueChart = adapters.MapRevenueForecastChart(r)
		return nil
	})
	c.Run(api.SectionRevenueTable, func() error {
		view.RevenueRows = adapters.MapRevenueForecastRows(r)
		return nil
	})
	c.Run(api.SectionModelInfo, func() error {
		view.ModelInfo = adapters.MapModelInfo(r)
		return nil
	})
	c.Run(api.SectionCategoryChart, func() error {
		view.CategoryChart = adapters.MapCategoryForecastChart(r)
		return nil
	})
	c.Run(api.SectionCategories, func() error {
		view.CategoryRows = adapters.MapCategoryForecastRows(r)
		return nil
	})
	c.Run(api.SectionInventory, func() error {
		view.Inventory = adapters.MapInventoryForecast(r)
		return nil
	})
	c.Run(api.SectionQuarterlyChart, func() error {
		view.QuarterlyChart = adapters.MapQuarterlyComparison(r)
		return nil
	})
	c.Run(api.SectionQuarterlyTable, func() error {
		view.QuarterlyRows = adapters.MapHistoricalQuarters(r)
		return nil
	})
	c.Run(api.SectionQuarterlySummary, func() error {
		view.QuarterlySummary = adapters.MapQuarterlySummary(r)
		return nil
	})
	view.Errors = c.Errors
	return view, nil
}

// Section derives a single forecasting section.
func (s *Service) Section(ctx context.Context, name string) (any, error) {
	if !slices.Contains(api.ForecastSections, name) {
		return nil, section.Unknown(name)
	}
	r, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	var out any
	err = section.Run(ctx, name, func() error {
		out = derive(name, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", section.ErrUnavailable, err)
	}
	return out, nil
}

func derive(name string, r *report.ForecastReport) any {
	switch name {
	case api.SectionHeadline:
		return adapters.MapForecastHeadline(r)
	case api.SectionAccuracy:
		return adapters.MapAccuracyMetrics(r)
	case api.SectionRevenueChart:
		return adapters.MapRevenueForecastChart(r)
	case api.SectionRevenueTable:
		return adapters.MapRevenueForecastRows(r)
	case api.SectionModelInfo:
		return adapters.MapModelInfo(r)
	case api.SectionCategoryChart:
		return adapters.MapCategoryForecastChart(r)
	case api.SectionCategories:
		return adapters.MapCategoryForecastRows(r)
	case api.SectionInventory:
		return adapters.MapInventoryForecast(r)
	case api.SectionQuarterlyChart:
		return adapters.MapQuarterlyComparison(r)
	case api.SectionQuarterlyTable:
		return adapters.MapHistoricalQuarters(r)
	case api.SectionQuarterlySummary:
		return adapters.MapQuarterlySummary(r)
	}
	return nil
}
