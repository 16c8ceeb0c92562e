package api

type TopProductRow struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Units    int64   `json:"units"`
}

type MonthlyTrendRow struct {
	Month         string  `json:"month"`
	Revenue       float64 `json:"revenue"`
	Transactions  int64   `json:"transactions"`
	Units         int64   `json:"units"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type RetailerRow struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	City         string  `json:"city"`
	Revenue      float64 `json:"revenue"`
	Transactions int64   `json:"transactions"`
}

type RegionRow struct {
	State              string  `json:"state"`
	Revenue            float64 `json:"revenue"`
	Retailers          int64   `json:"retailers"`
	MarketShare        float64 `json:"market_share"`
	RevenuePerRetailer float64 `json:"revenue_per_retailer"`
}

type CustomerSegmentRow struct {
	AgeGroup     string  `json:"age_group"`
	IncomeLevel  string  `json:"income_level"`
	Customers    int64   `json:"customers"`
	Purchases    int64   `json:"purchases"`
	AvgPurchases float64 `json:"avg_purchases"`
}

type InventoryStatusRow struct {
	Product      string `json:"product"`
	Category     string `json:"category"`
	Stock        int64  `json:"stock"`
	Locations    int64  `json:"locations"`
	BelowReorder int64  `json:"below_reorder"`
}

type InventoryForecastRow struct {
	ID               string    `json:"id"`
	ProductName      string    `json:"product_name"`
	Category         string    `json:"category"`
	ForecastUnits    []float64 `json:"forecast_units"`
	AvgMonthlyDemand float64   `json:"avg_monthly_demand"`
	ReorderPoint     float64   `json:"reorder_point"`
	SafetyStock      float64   `json:"safety_stock"`
	TotalRequired    float64   `json:"total_required"`
}

type ForecastRow struct {
	Month    string  `json:"month"`
	Forecast float64 `json:"forecast"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
}

type QuarterRow struct {
	Quarter       string  `json:"quarter"`
	Revenue       float64 `json:"revenue"`
	UnitsSold     int64   `json:"units_sold"`
	Transactions  int64   `json:"transactions"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type CategoryForecastRow struct {
	Rank          int     `json:"rank"`
	Category      string  `json:"category"`
	TotalForecast float64 `json:"total_forecast"`
	AvgMonthly    float64 `json:"avg_monthly"`
	GrowthRate    float64 `json:"growth_rate"`
	Growth        string  `json:"growth"`
}
