package adapters

import (
	"cmp"
	"regexp"
	"slices"

	"github.com/de-tools/fmcg-atlas/pkg/format"
	"github.com/de-tools/fmcg-atlas/pkg/models/api"
	"github.com/de-tools/fmcg-atlas/pkg/models/report"
)

const (
	colorBlue   = "#3b82f6"
	colorGreen  = "#10b981"
	colorAmber  = "#f59e0b"
	colorRed    = "#ef4444"
	colorViolet = "#8b5cf6"
	colorPink   = "#ec4899"
	colorWhite  = "#fff"

	forecastFill = "rgba(59, 130, 246, 0.1)"
	curveTension = 0.4

	// QuarterHistory is how many historical quarters the comparison chart shows.
	QuarterHistory = 4

	defaultForecastQuarter = "Q1 2025"
)

var (
	categoryPalette = []string{colorBlue, colorGreen, colorAmber, colorRed, colorViolet, colorPink}
	confidenceDash  = []int{5, 5}
	quarterToken    = regexp.MustCompile(`^Q[1-4] \d{4}`)
)

// MapRevenueForecastChart lays the forecast and its 95% interval out as three
// line datasets over the forecast dates.
func MapRevenueForecastChart(f *report.ForecastReport) *api.Chart {
	rf := f.RevenueForecast
	return &api.Chart{
		Labels: slices.Clone(rf.ForecastDates),
		Datasets: []api.Dataset{
			{
				Label:           "Forecast Revenue",
				Data:            floats(rf.ForecastValues),
				BorderColor:     colorBlue,
				BackgroundColor: []string{forecastFill},
				BorderWidth:     2,
				Fill:            true,
				Tension:         curveTension,
			},
			{
				Label:       "Upper Bound (95% CI)",
				Data:        floats(rf.UpperBound),
				BorderColor: colorGreen,
				BorderDash:  confidenceDash,
				BorderWidth: 1,
				Tension:     curveTension,
			},
			{
				Label:       "Lower Bound (95% CI)",
				Data:        floats(rf.LowerBound),
				BorderColor: colorRed,
				BorderDash:  confidenceDash,
				BorderWidth: 1,
				Tension:     curveTension,
			},
		},
	}
}

// MapCategoryForecastChart plots total forecast per category. Categories are
// sorted by name so the palette assignment is stable between runs.
func MapCategoryForecastChart(f *report.ForecastReport) *api.Chart {
	names := make([]string, 0, len(f.CategoryForecast))
	for name := range f.CategoryForecast {
		names = append(names, name)
	}
	slices.Sort(names)

	data := make([]float64, 0, len(names))
	colors := make([]string, 0, len(names))
	for i, name := range names {
		data = append(data, float64(f.CategoryForecast[name].TotalForecast))
		colors = append(colors, categoryPalette[i%len(categoryPalette)])
	}

	return &api.Chart{
		Labels: names,
		Datasets: []api.Dataset{{
			Label:           "Forecast Revenue by Category",
			Data:            data,
			BackgroundColor: colors,
			BorderColor:     colorWhite,
			BorderWidth:     2,
		}},
	}
}

// MapInventoryForecast ranks products by total units required, highest first,
// and keeps the top TopN. Equal totals are ordered by product id.
func MapInventoryForecast(f *report.ForecastReport) []api.InventoryForecastRow {
	rows := make([]api.InventoryForecastRow, 0, len(f.InventoryForecast))
	for id, p := range f.InventoryForecast {
		rows = append(rows, api.InventoryForecastRow{
			ID:               id,
			ProductName:      p.ProductName,
			Category:         p.Category,
			ForecastUnits:    slices.Clone(p.ForecastUnits),
			AvgMonthlyDemand: p.AvgMonthlyDemand,
			ReorderPoint:     p.ReorderPoint,
			SafetyStock:      p.SafetyStock,
			TotalRequired:    p.TotalRequired,
		})
	}
	slices.SortFunc(rows, func(a, b api.InventoryForecastRow) int {
		if c := cmp.Compare(b.TotalRequired, a.TotalRequired); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return head(rows, TopN)
}

// MapQuarterlyComparison charts up to the last four historical quarters
// followed by the forecast quarter.
func MapQuarterlyComparison(f *report.ForecastReport) *api.Chart {
	qm := f.QuarterlyMetrics
	history := qm.HistoricalQuarters
	if len(history) > QuarterHistory {
		history = history[len(history)-QuarterHistory:]
	}

	labels := make([]string, 0, len(history)+1)
	data := make([]float64, 0, len(history)+1)
	colors := make([]string, 0, len(history)+1)
	for _, q := range history {
		labels = append(labels, string(q.Quarter))
		data = append(data, float64(q.Revenue))
		colors = append(colors, colorBlue)
	}
	labels = append(labels, ForecastQuarterLabel(f))
	data = append(data, float64(qm.ForecastQuarterRevenue))
	colors = append(colors, colorGreen)

	return &api.Chart{
		Labels: labels,
		Datasets: []api.Dataset{{
			Label:           "Quarterly Revenue",
			Data:            data,
			BackgroundColor: colors,
			BorderColor:     colorWhite,
			BorderWidth:     2,
		}},
	}
}

// ForecastQuarterLabel names the synthesized forecast bar, e.g.
// "Q1 2025 (Forecast)", taking the quarter from forecast_period when it has one.
func ForecastQuarterLabel(f *report.ForecastReport) string {
	return forecastQuarter(f) + " (Forecast)"
}

func forecastQuarter(f *report.ForecastReport) string {
	if q := quarterToken.FindString(f.ForecastPeriod); q != "" {
		return q
	}
	return defaultForecastQuarter
}

func MapHistoricalQuarters(f *report.ForecastReport) []api.QuarterRow {
	quarters := f.QuarterlyMetrics.HistoricalQuarters
	rows := make([]api.QuarterRow, 0, len(quarters))
	for _, q := range quarters {
		rows = append(rows, api.QuarterRow{
			Quarter:       string(q.Quarter),
			Revenue:       float64(q.Revenue),
			UnitsSold:     int64(q.UnitsSold),
			Transactions:  int64(q.TransactionCount),
			AvgOrderValue: float64(q.AvgOrderValue),
		})
	}
	return rows
}

func MapQuarterlySummary(f *report.ForecastReport) []api.Detail {
	qm := f.QuarterlyMetrics
	return []api.Detail{
		{Label: "Last Quarter Revenue", Value: format.Currency(float64(qm.LastQuarterRevenue))},
		{Label: "Forecast " + forecastQuarter(f) + " Revenue", Value: format.Currency(float64(qm.ForecastQuarterRevenue))},
		{Label: "Quarter-over-Quarter Change", Value: format.SignedPercentage(float64(qm.QoQChangePercent))},
		{Label: "Forecast Monthly Average", Value: format.Currency(float64(qm.ForecastMonthlyAvg))},
	}
}

// MapAccuracyMetrics derives MAPE as MAE over the historical average. With a
// zero average there is no meaningful ratio and MAPE reads "N/A".
func MapAccuracyMetrics(f *report.ForecastReport) *api.AccuracyMetrics {
	rf := f.RevenueForecast
	metrics := &api.AccuracyMetrics{
		MAE:        format.Currency(float64(rf.MAE)),
		RMSE:       format.Currency(float64(rf.RMSE)),
		MAPE:       format.Unavailable,
		Confidence: f.Summary.ConfidenceLevel,
	}
	if avg := float64(rf.ModelInfo.HistoricalAvg); avg != 0 {
		mape := format.Percentage(float64(rf.MAE) / avg * 100)
		metrics.MAPE = mape
		metrics.MAPEAvailable = mape != format.Unavailable
	}
	return metrics
}

func MapRevenueForecastRows(f *report.ForecastReport) []api.ForecastRow {
	rf := f.RevenueForecast
	rows := make([]api.ForecastRow, 0, len(rf.ForecastDates))
	for i, date := range rf.ForecastDates {
		rows = append(rows, api.ForecastRow{
			Month:    date,
			Forecast: float64(rf.ForecastValues[i]),
			Lower:    float64(rf.LowerBound[i]),
			Upper:    float64(rf.UpperBound[i]),
		})
	}
	return rows
}

func MapModelInfo(f *report.ForecastReport) []api.Detail {
	mi := f.RevenueForecast.ModelInfo
	return []api.Detail{
		{Label: "Historical Average", Value: format.Currency(float64(mi.HistoricalAvg))},
		{Label: "Last Month Value", Value: format.Currency(float64(mi.LastValue))},
		{Label: "Standard Deviation", Value: format.Currency(float64(mi.HistoricalStd))},
		{Label: "Model Type", Value: mi.ModelType},
	}
}

// MapCategoryForecastRows keeps the producer's ranking of top categories.
func MapCategoryForecastRows(f *report.ForecastReport) []api.CategoryForecastRow {
	ranked := f.Summary.TopForecastCategories
	rows := make([]api.CategoryForecastRow, 0, len(ranked))
	for i, c := range ranked {
		rows = append(rows, api.CategoryForecastRow{
			Rank:          i + 1,
			Category:      c.Name,
			TotalForecast: float64(c.Forecast.TotalForecast),
			AvgMonthly:    float64(c.Forecast.AvgMonthly),
			GrowthRate:    float64(c.Forecast.GrowthRate),
			Growth:        format.SignedPercentage(float64(c.Forecast.GrowthRate)),
		})
	}
	return rows
}

// MapForecastHeadline builds the four cards at the top of the forecasting page.
func MapForecastHeadline(f *report.ForecastReport) []api.KPI {
	qoq := float64(f.QuarterlyMetrics.QoQChangePercent)
	accuracy := MapAccuracyMetrics(f)

	period := f.ForecastPeriod
	if period == "" {
		period = format.Unavailable
	}

	return []api.KPI{
		{Label: "Forecast Period", Value: period, Change: f.ForecastHorizon},
		{
			Label:  "Total Forecast Revenue",
			Value:  format.Currency(float64(f.Summary.TotalForecastRevenue)),
			Trend:  trendOf(qoq),
			Change: format.SignedPercentage(qoq) + " QoQ",
		},
		{Label: "Model Accuracy (MAE)", Value: accuracy.MAE, Change: "MAPE: " + accuracy.MAPE},
		{Label: "Confidence Level", Value: f.Summary.ConfidenceLevel, Change: modelLabel(f.RevenueForecast.ModelInfo.ModelType)},
	}
}

func modelLabel(modelType string) string {
	if modelType == "" {
		return ""
	}
	return modelType + " Model"
}

func floats[T ~float64](values []T) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
