package api

// Dashboard sections.
const (
	SectionKPIs             = "kpis"
	SectionSalesByCategory  = "sales_by_category"
	SectionMonthlyTrends    = "monthly_trends"
	SectionTopProducts      = "top_products"
	SectionRetailers        = "retailers"
	SectionRegions          = "regions"
	SectionCustomerSegments = "customer_segments"
	SectionInventory        = "inventory"
)

// Forecasting sections. SectionInventory is shared with the dashboard.
const (
	SectionHeadline         = "headline"
	SectionAccuracy         = "accuracy"
	SectionRevenueChart     = "revenue_chart"
	SectionRevenueTable     = "revenue_table"
	SectionModelInfo        = "model_info"
	SectionCategoryChart    = "category_chart"
	SectionCategories       = "categories"
	SectionQuarterlyChart   = "quarterly_chart"
	SectionQuarterlyTable   = "quarterly_table"
	SectionQuarterlySummary = "quarterly_summary"
)

var (
	DashboardSections = []string{
		SectionKPIs, SectionSalesByCategory, SectionMonthlyTrends, SectionTopProducts,
		SectionRetailers, SectionRegions, SectionCustomerSegments, SectionInventory,
	}
	ForecastSections = []string{
		SectionHeadline, SectionAccuracy, SectionRevenueChart, SectionRevenueTable, SectionModelInfo,
		SectionCategoryChart, SectionCategories, SectionInventory,
		SectionQuarterlyChart, SectionQuarterlyTable, SectionQuarterlySummary,
	}
)

// DashboardView is the business-insights page. A section that failed to
// derive is left empty and named in Errors.
type DashboardView struct {
	Title            string               `json:"title"`
	KPIs             []KPI                `json:"kpis"`
	SalesByCategory  []ChartPoint         `json:"sales_by_category"`
	MonthlyTrends    []MonthlyTrendRow    `json:"monthly_trends"`
	TopProducts      []TopProductRow      `json:"top_products"`
	Retailers        []RetailerRow        `json:"retailers"`
	Regions          []RegionRow          `json:"regions"`
	CustomerSegments []CustomerSegmentRow `json:"customer_segments"`
	Inventory        []InventoryStatusRow `json:"inventory"`
	Errors           map[string]string    `json:"errors,omitempty"`
}

// ForecastView is the predictive-analytics page.
type ForecastView struct {
	Title            string                 `json:"title"`
	Period           string                 `json:"period,omitempty"`
	Headline         []KPI                  `json:"headline"`
	Accuracy         *AccuracyMetrics       `json:"accuracy"`
	RevenueChart     *Chart                 `json:"revenue_chart"`
	RevenueRows      []ForecastRow          `json:"revenue_table"`
	ModelInfo        []Detail               `json:"model_info"`
	CategoryChart    *Chart                 `json:"category_chart"`
	CategoryRows     []CategoryForecastRow  `json:"categories"`
	Inventory        []InventoryForecastRow `json:"inventory"`
	QuarterlyChart   *Chart                 `json:"quarterly_chart"`
	QuarterlyRows    []QuarterRow           `json:"quarterly_table"`
	QuarterlySummary []Detail               `json:"quarterly_summary"`
	Errors           map[string]string      `json:"errors,omitempty"`
}
