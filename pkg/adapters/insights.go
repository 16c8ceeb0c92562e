package adapters

import (
	"math"

	"github.com/de-tools/fmcg-atlas/pkg/format"
	"github.com/de-tools/fmcg-atlas/pkg/models/api"
	"github.com/de-tools/fmcg-atlas/pkg/models/report"
)

// TopN is how many rows the ranked tables keep.
const TopN = 10

// MapInsightsKPIs builds the six headline cards. Trend and change are only
// filled when a prior-period report is given.
func MapInsightsKPIs(current, prior *report.InsightsReport) []api.KPI {
	s := current.StatisticalSummary
	kpis := []api.KPI{
		{Label: "Total Revenue", Value: format.Millions(float64(s.TotalRevenue))},
		{Label: "Total Transactions", Value: format.Integer(int64(s.TotalTransactions))},
		{Label: "Avg Order Value", Value: format.Money(float64(s.AvgTransactionValue))},
		{Label: "Active Retailers", Value: format.Integer(int64(s.ActiveRetailers))},
		{Label: "Products Sold", Value: format.Integer(int64(s.ProductsSold))},
		{Label: "Avg Discount Rate", Value: format.Percentage(float64(s.AvgDiscountRate))},
	}
	if prior == nil || prior.StatisticalSummary == nil {
		return kpis
	}

	p := prior.StatisticalSummary
	kpis[0].Trend, kpis[0].Change = relativeChange(float64(s.TotalRevenue), float64(p.TotalRevenue))
	kpis[1].Trend, kpis[1].Change = relativeChange(float64(s.TotalTransactions), float64(p.TotalTransactions))
	kpis[2].Trend, kpis[2].Change = relativeChange(float64(s.AvgTransactionValue), float64(p.AvgTransactionValue))
	kpis[3].Trend, kpis[3].Change = absoluteChange(s.ActiveRetailers, p.ActiveRetailers)
	kpis[4].Trend, kpis[4].Change = absoluteChange(s.ProductsSold, p.ProductsSold)
	kpis[5].Trend, kpis[5].Change = relativeChange(float64(s.AvgDiscountRate), float64(p.AvgDiscountRate))
	return kpis
}

func relativeChange(current, prior float64) (api.Trend, string) {
	delta := current - prior
	if prior == 0 {
		return trendOf(delta), format.Unavailable
	}
	return trendOf(delta), format.SignedPercentage(delta / math.Abs(prior) * 100)
}

func absoluteChange(current, prior report.Count) (api.Trend, string) {
	delta := int64(current - prior)
	return trendOf(float64(delta)), format.SignedInteger(delta)
}

func trendOf(delta float64) api.Trend {
	switch {
	case delta > 0:
		return api.TrendUp
	case delta < 0:
		return api.TrendDown
	default:
		return api.TrendNeutral
	}
}

func MapSalesByCategory(r *report.InsightsReport) []api.ChartPoint {
	points := make([]api.ChartPoint, 0, len(r.SalesByCategory))
	for _, c := range r.SalesByCategory {
		pct := float64(c.RevenuePct)
		points = append(points, api.ChartPoint{
			Name:       c.Category,
			Value:      float64(c.Revenue),
			Percentage: &pct,
		})
	}
	return points
}

// MapTopProducts keeps the first TopN products in report order; the report is
// already ranked by revenue.
func MapTopProducts(r *report.InsightsReport) []api.TopProductRow {
	products := head(r.TopProducts, TopN)
	rows := make([]api.TopProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, api.TopProductRow{
			Name:     p.ProductName,
			Category: p.Category,
			Revenue:  float64(p.TotalRevenue),
			Units:    int64(p.TotalQuantity),
		})
	}
	return rows
}

func MapMonthlyTrends(r *report.InsightsReport) []api.MonthlyTrendRow {
	rows := make([]api.MonthlyTrendRow, 0, len(r.MonthlyTrends))
	for _, m := range r.MonthlyTrends {
		rows = append(rows, api.MonthlyTrendRow{
			Month:         m.Month,
			Revenue:       float64(m.Revenue),
			Transactions:  int64(m.Transactions),
			Units:         int64(m.UnitsSold),
			AvgOrderValue: float64(m.AvgOrderValue),
		})
	}
	return rows
}

func MapRetailerPerformance(r *report.InsightsReport) []api.RetailerRow {
	retailers := head(r.RetailerPerformance, TopN)
	rows := make([]api.RetailerRow, 0, len(retailers))
	for _, rp := range retailers {
		rows = append(rows, api.RetailerRow{
			Name:         rp.RetailerName,
			Type:         rp.RetailerType,
			City:         rp.City,
			Revenue:      float64(rp.Revenue),
			Transactions: int64(rp.Transactions),
		})
	}
	return rows
}

func MapRegionalSales(r *report.InsightsReport) []api.RegionRow {
	rows := make([]api.RegionRow, 0, len(r.RegionalSales))
	for _, rs := range r.RegionalSales {
		rows = append(rows, api.RegionRow{
			State:              rs.State,
			Revenue:            float64(rs.Revenue),
			Retailers:          int64(rs.RetailerCount),
			MarketShare:        float64(rs.MarketShare),
			RevenuePerRetailer: float64(rs.RevenuePerRetailer),
		})
	}
	return rows
}

// MapCustomerDemographics returns every segment; the dashboard trims it.
func MapCustomerDemographics(r *report.InsightsReport) []api.CustomerSegmentRow {
	rows := make([]api.CustomerSegmentRow, 0, len(r.CustomerDemographics))
	for _, c := range r.CustomerDemographics {
		rows = append(rows, api.CustomerSegmentRow{
			AgeGroup:     c.AgeGroup,
			IncomeLevel:  c.IncomeLevel,
			Customers:    int64(c.CustomerCount),
			Purchases:    int64(c.TotalPurchases),
			AvgPurchases: c.AvgPurchasesPerCustomer,
		})
	}
	return rows
}

func MapInventoryStatus(r *report.InsightsReport) []api.InventoryStatusRow {
	items := head(r.InventoryStatus, TopN)
	rows := make([]api.InventoryStatusRow, 0, len(items))
	for _, i := range items {
		rows = append(rows, api.InventoryStatusRow{
			Product:      i.ProductName,
			Category:     i.Category,
			Stock:        int64(i.TotalStock),
			Locations:    int64(i.RetailerLocations),
			BelowReorder: int64(i.LocationsBelowReorder),
		})
	}
	return rows
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
