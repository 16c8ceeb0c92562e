package adapters

import (
	"strconv"
	"strings"

	"github.com/de-tools/fmcg-atlas/pkg/format"
	"github.com/de-tools/fmcg-atlas/pkg/models/api"
	"github.com/de-tools/fmcg-atlas/pkg/models/domain"
)

func MapDashboardViewToReport(v *api.DashboardView) domain.Report {
	b := reportBuilder{errors: v.Errors}

	b.summary(api.SectionKPIs, "Key Performance Indicators", kpiDetails(v.KPIs))
	b.table(api.SectionSalesByCategory, "Sales by Category",
		[]string{"Category", "Revenue", "Share"},
		mapRows(v.SalesByCategory, func(p api.ChartPoint) []string {
			share := ""
			if p.Percentage != nil {
				share = format.Percentage(*p.Percentage)
			}
			return []string{p.Name, format.Currency(p.Value), share}
		}))
	b.table(api.SectionMonthlyTrends, "Monthly Sales Trends",
		[]string{"Month", "Revenue", "Transactions", "Units", "Avg Order Value"},
		mapRows(v.MonthlyTrends, func(m api.MonthlyTrendRow) []string {
			return []string{m.Month, format.Currency(m.Revenue), format.Integer(m.Transactions), format.Integer(m.Units), format.Money(m.AvgOrderValue)}
		}))
	b.table(api.SectionTopProducts, "Top 10 Products",
		[]string{"Product", "Category", "Revenue", "Units"},
		mapRows(v.TopProducts, func(p api.TopProductRow) []string {
			return []string{p.Name, p.Category, format.Currency(p.Revenue), format.Integer(p.Units)}
		}))
	b.table(api.SectionRetailers, "Retailer Performance",
		[]string{"Retailer", "Type", "City", "Revenue", "Transactions"},
		mapRows(v.Retailers, func(r api.RetailerRow) []string {
			return []string{r.Name, r.Type, r.City, format.Currency(r.Revenue), format.Integer(r.Transactions)}
		}))
	b.table(api.SectionRegions, "Regional Performance",
		[]string{"State", "Retailers", "Revenue", "Market Share", "Revenue / Retailer"},
		mapRows(v.Regions, func(r api.RegionRow) []string {
			return []string{r.State, format.Integer(r.Retailers), format.Currency(r.Revenue), format.Percentage(r.MarketShare), format.Currency(r.RevenuePerRetailer)}
		}))
	b.table(api.SectionCustomerSegments, "Customer Segments",
		[]string{"Age Group", "Income Level", "Customers", "Purchases", "Avg Purchases"},
		mapRows(v.CustomerSegments, func(c api.CustomerSegmentRow) []string {
			return []string{c.AgeGroup, c.IncomeLevel, format.Integer(c.Customers), format.Integer(c.Purchases), strconv.FormatFloat(c.AvgPurchases, 'f', 2, 64)}
		}))
	b.table(api.SectionInventory, "Inventory Status",
		[]string{"Product", "Category", "Stock", "Locations", "Below Reorder"},
		mapRows(v.Inventory, func(i api.InventoryStatusRow) []string {
			return []string{i.Product, i.Category, format.Integer(i.Stock), format.Integer(i.Locations), format.Integer(i.BelowReorder)}
		}))

	return domain.Report{
		Title:    v.Title,
		Subtitle: "Comprehensive data analysis dashboard",
		Sections: b.sections,
	}
}

func MapForecastViewToReport(v *api.ForecastView) domain.Report {
	b := reportBuilder{errors: v.Errors}

	b.summary(api.SectionHeadline, "Forecast Overview", kpiDetails(v.Headline))
	var accuracy []domain.ReportDetail
	if v.Accuracy != nil {
		accuracy = []domain.ReportDetail{
			{Name: "MAE", Value: v.Accuracy.MAE},
			{Name: "RMSE", Value: v.Accuracy.RMSE},
			{Name: "MAPE", Value: v.Accuracy.MAPE},
			{Name: "Confidence", Value: v.Accuracy.Confidence},
		}
	}
	b.summary(api.SectionAccuracy, "Model Accuracy Metrics", accuracy)
	b.table(api.SectionRevenueTable, "Revenue Forecast",
		[]string{"Month", "Forecast", "Lower Bound", "Upper Bound"},
		mapRows(v.RevenueRows, func(r api.ForecastRow) []string {
			return []string{r.Month, format.Currency(r.Forecast), format.Currency(r.Lower), format.Currency(r.Upper)}
		}))
	b.summary(api.SectionModelInfo, "Model Information", details(v.ModelInfo))
	b.chart(api.SectionCategoryChart, "Forecast Revenue by Category", "Category", v.CategoryChart)
	b.table(api.SectionCategories, "Top Forecast Categories",
		[]string{"Rank", "Category", "Forecast Revenue", "Avg Monthly", "Growth"},
		mapRows(v.CategoryRows, func(c api.CategoryForecastRow) []string {
			return []string{strconv.Itoa(c.Rank), c.Category, format.Currency(c.TotalForecast), format.Currency(c.AvgMonthly), c.Growth}
		}))
	b.table(api.SectionInventory, "Inventory Requirements",
		[]string{"ID", "Product", "Category", "Total Required", "Avg Monthly Demand", "Reorder Point", "Safety Stock"},
		mapRows(v.Inventory, func(i api.InventoryForecastRow) []string {
			return []string{i.ID, i.ProductName, i.Category, format.Number(i.TotalRequired), format.Number(i.AvgMonthlyDemand), format.Number(i.ReorderPoint), format.Number(i.SafetyStock)}
		}))
	b.chart(api.SectionQuarterlyChart, "Quarterly Comparison", "Quarter", v.QuarterlyChart)
	b.table(api.SectionQuarterlyTable, "Historical Quarters",
		[]string{"Quarter", "Revenue", "Units Sold", "Transactions"},
		mapRows(v.QuarterlyRows, func(q api.QuarterRow) []string {
			return []string{q.Quarter, format.Currency(q.Revenue), format.Integer(q.UnitsSold), format.Integer(q.Transactions)}
		}))
	b.summary(api.SectionQuarterlySummary, "Quarterly Summary", details(v.QuarterlySummary))

	return domain.Report{
		Title:    v.Title,
		Subtitle: v.Period,
		Sections: b.sections,
	}
}

type reportBuilder struct {
	errors   map[string]string
	sections []domain.ReportSection
}

func (b *reportBuilder) summary(name, title string, summary []domain.ReportDetail) {
	b.sections = append(b.sections, domain.ReportSection{
		Name:    name,
		Title:   title,
		Summary: summary,
		Error:   b.errors[name],
	})
}

func (b *reportBuilder) table(name, title string, columns []string, rows [][]string) {
	b.sections = append(b.sections, domain.ReportSection{
		Name:    name,
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Error:   b.errors[name],
	})
}

// chart renders a chart as a table: one row per label, one column per dataset.
func (b *reportBuilder) chart(name, title, labelColumn string, c *api.Chart) {
	if c == nil {
		b.table(name, title, nil, nil)
		return
	}
	columns := []string{labelColumn}
	for _, ds := range c.Datasets {
		columns = append(columns, strings.TrimSpace(ds.Label))
	}
	rows := make([][]string, 0, len(c.Labels))
	for i, label := range c.Labels {
		row := []string{label}
		for _, ds := range c.Datasets {
			cell := ""
			if i < len(ds.Data) {
				cell = format.Currency(ds.Data[i])
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	b.table(name, title, columns, rows)
}

func kpiDetails(kpis []api.KPI) []domain.ReportDetail {
	out := make([]domain.ReportDetail, 0, len(kpis))
	for _, k := range kpis {
		out = append(out, domain.ReportDetail{Name: k.Label, Value: k.Value, Description: k.Change})
	}
	return out
}

func details(in []api.Detail) []domain.ReportDetail {
	out := make([]domain.ReportDetail, 0, len(in))
	for _, d := range in {
		out = append(out, domain.ReportDetail{Name: d.Label, Value: d.Value})
	}
	return out
}

func mapRows[T any](items []T, fn func(T) []string) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, fn(item))
	}
	return rows
}
