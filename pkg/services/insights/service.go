package insights

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

const Title = "FMCG Healthcare Analytics"

const DefaultTimeout = 30 * time.Second

type Settings struct {
	Timeout time.Duration
	// PriorPath locates a previous period's insights report. When set, the
	// KPI cards show their movement against it.
	PriorPath string
}

type Service struct {
	source   source.Source
	current  *cache.Slot[report.InsightsReport]
	prior    *cache.Slot[report.InsightsReport]
	settings Settings
}

// NewService wires the adapter to its source. The slots are owned by the
// caller so one report is shared by every consumer in the process.
func NewService(
	src source.Source,
	current *cache.Slot[report.InsightsReport],
	prior *cache.Slot[report.InsightsReport],
	settings Settings,
) *Service {
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}
	return &Service{
		source:   src,
		current:  current,
		prior:    prior,
		settings: settings,
	}
}

// Load returns the insights report, fetching it on first use.
func (s *Service) Load(ctx context.Context) (*report.InsightsReport, error) {
	return s.current.Get(ctx, s.fetch(source.InsightsPath))
}

// loadPrior is best effort: without a prior report the KPIs have no trend.
// A failed prior load is final for the process so it never delays a page twice.
func (s *Service) loadPrior(ctx context.Context) *report.InsightsReport {
	if s.settings.PriorPath == "" || s.prior == nil {
		return nil
	}
	if s.prior.State() == cache.Failed {
		return nil
	}
	r, err := s.prior.Get(ctx, s.fetch(s.settings.PriorPath))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", s.settings.PriorPath).Msg("prior insights report unavailable, KPI trends omitted")
		return nil
	}
	return r
}

func (s *Service) fetch(path string) cache.LoadFunc[report.InsightsReport] {
	return func(ctx context.Context) (*report.InsightsReport, error) {
		logger := zerolog.Ctx(ctx).With().Str("report", report.Insights).Str("path", path).Logger()
		ctx, cancel := context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()

		start := time.Now()
		logger.Info().Msg("loading report")

		data, err := s.source.Fetch(ctx, path)
		if err != nil {
			logger.Error().Err(err).Msg("failed to fetch report")
			return nil, err
		}
		r, err := report.DecodeInsights(data)
		if err != nil {
			logger.Error().Err(err).Msg("report failed validation")
			return nil, err
		}

		logger.Info().Dur("elapsed", time.Since(start)).Msg("report loaded")
		return r, nil
	}
}

// Dashboard assembles the whole page. A load failure fails the page; a
// failure inside one section only blanks that section.
func (s *Service) Dashboard(ctx context.Context) (*api.DashboardView, error) {
	r, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	prior := s.loadPrior(ctx)

	view := &api.DashboardView{Title: Title}
	c := section.NewCollector(ctx)
	c.Run(api.SectionKPIs, func() error {
		view.KPIs = adapters.MapInsightsKPIs(r, prior)
		return nil
	})
	c.Run(api.SectionSalesByCategory, func() error {
		view.SalesByCategory = adapters.MapSalesByCategory(r)
		return nil
	})
	c.Run(api.SectionMonthlyTrends, func() error {
		view.MonthlyTrends = adapters.MapMonthlyTrends(r)
		return nil
	})
	c.Run(api.SectionTopProducts, func() error {
		view.TopProducts = adapters.MapTopProducts(r)
		return nil
	})
	c.Run(api.SectionRetailers, func() error {
		view.Retailers = adapters.MapRetailerPerformance(r)
		return nil
	})
	c.Run(api.SectionRegions, func() error {
		view.Regions = adapters.MapRegionalSales(r)
		return nil
	})
	c.Run(api.SectionCustomerSegments, func() error {
		view.CustomerSegments = firstSegments(adapters.MapCustomerDemographics(r))
		return nil
	})
	c.Run(api.SectionInventory, func() error {
		view.Inventory = adapters.MapInventoryStatus(r)
		return nil
	})
	view.Errors = c.Errors
	return view, nil
}

// Section derives a single dashboard section.
func (s *Service) Section(ctx context.Context, name string) (any, error) {
	if !slices.Contains(api.DashboardSections, name) {
		return nil, section.Unknown(name)
	}
	r, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	var prior *report.InsightsReport
	if name == api.SectionKPIs {
		prior = s.loadPrior(ctx)
	}

	var out any
	err = section.Run(ctx, name, func() error {
		out = derive(name, r, prior)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", section.ErrUnavailable, err)
	}
	return out, nil
}

func derive(name string, r, prior *report.InsightsReport) any {
	switch name {
	case api.SectionKPIs:
		return adapters.MapInsightsKPIs(r, prior)
	case api.SectionSalesByCategory:
		return adapters.MapSalesByCategory(r)
	case api.SectionMonthlyTrends:
		return adapters.MapMonthlyTrends(r)
	case api.SectionTopProducts:
		return adapters.MapTopProducts(r)
	case api.SectionRetailers:
		return adapters.MapRetailerPerformance(r)
	case api.SectionRegions:
		return adapters.MapRegionalSales(r)
	case api.SectionCustomerSegments:
		return firstSegments(adapters.MapCustomerDemographics(r))
	case api.SectionInventory:
		return adapters.MapInventoryStatus(r)
	}
	return nil
}

func firstSegments(rows []api.CustomerSegmentRow) []api.CustomerSegmentRow {
	return rows[:min(len(rows), adapters.TopN)]
}
