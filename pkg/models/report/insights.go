package report

import "encoding/json"

// InsightsReport is the business-insights document produced by the analysis pipeline.
type InsightsReport struct {
	StatisticalSummary   *StatisticalSummary   `json:"statistical_summary" validate:"required"`
	SalesByCategory      []CategorySales       `json:"sales_by_category" validate:"required,dive"`
	MonthlyTrends        []MonthlyTrend        `json:"monthly_trends" validate:"required,dive"`
	TopProducts          []TopProduct          `json:"top_products" validate:"required,dive"`
	RetailerPerformance  []RetailerPerformance `json:"retailer_performance" validate:"required,dive"`
	RegionalSales        []RegionalSales       `json:"regional_sales" validate:"required,dive"`
	CustomerDemographics []CustomerSegment     `json:"customer_demographics" validate:"required,dive"`
	InventoryStatus      []InventoryStatus     `json:"inventory_status" validate:"required,dive"`
}

type StatisticalSummary struct {
	TotalTransactions     Count    `json:"total_transactions"`
	TotalUnitsSold        Count    `json:"total_units_sold,omitempty"`
	TotalRevenue          Currency `json:"total_revenue"`
	AvgTransactionValue   Currency `json:"avg_transaction_value"`
	MinTransactionValue   Currency `json:"min_transaction_value,omitempty"`
	StdevTransactionValue Currency `json:"stdev_transaction_value,omitempty"`
	ActiveRetailers       Count    `json:"active_retailers"`
	ProductsSold          Count    `json:"products_sold"`
	AvgDiscountRate       Percent  `json:"avg_discount_rate"`
}

type CategorySales struct {
	Category      string   `json:"category" validate:"required"`
	Transactions  Count    `json:"transactions"`
	UnitsSold     Count    `json:"units_sold"`
	Revenue       Currency `json:"revenue"`
	AvgOrderValue Currency `json:"avg_order_value"`
	RevenuePct    Percent  `json:"revenue_pct"`
}

type MonthlyTrend struct {
	Month         string   `json:"month" validate:"required"`
	Transactions  Count    `json:"transactions"`
	UnitsSold     Count    `json:"units_sold"`
	Revenue       Currency `json:"revenue"`
	AvgOrderValue Currency `json:"avg_order_value"`
}

// UnmarshalJSON also accepts the monthly_revenue and transaction_count
// spellings used by older dashboard builds.
func (m *MonthlyTrend) UnmarshalJSON(data []byte) error {
	type plain MonthlyTrend
	var aux struct {
		plain
		MonthlyRevenue   *Currency `json:"monthly_revenue"`
		TransactionCount *Count    `json:"transaction_count"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = MonthlyTrend(aux.plain)
	if m.Revenue == 0 && aux.MonthlyRevenue != nil {
		m.Revenue = *aux.MonthlyRevenue
	}
	if m.Transactions == 0 && aux.TransactionCount != nil {
		m.Transactions = *aux.TransactionCount
	}
	return nil
}

type TopProduct struct {
	ProductID     string   `json:"product_id,omitempty"`
	ProductName   string   `json:"product_name" validate:"required"`
	Category      string   `json:"category"`
	TimesSold     Count    `json:"times_sold"`
	TotalQuantity Count    `json:"total_quantity"`
	TotalRevenue  Currency `json:"total_revenue"`
	AvgOrderValue Currency `json:"avg_order_value"`
}

type RetailerPerformance struct {
	RetailerID     string   `json:"retailer_id,omitempty"`
	RetailerName   string   `json:"retailer_name" validate:"required"`
	RetailerType   string   `json:"retailer_type"`
	City           string   `json:"city"`
	Transactions   Count    `json:"transactions"`
	UnitsSold      Count    `json:"units_sold"`
	Revenue        Currency `json:"revenue"`
	AvgOrderValue  Currency `json:"avg_order_value"`
	ProductVariety Count    `json:"product_variety"`
}

type RegionalSales struct {
	State              string   `json:"state" validate:"required"`
	RetailerCount      Count    `json:"retailer_count"`
	Transactions       Count    `json:"transactions"`
	UnitsSold          Count    `json:"units_sold"`
	Revenue            Currency `json:"revenue"`
	RevenuePerRetailer Currency `json:"revenue_per_retailer"`
	MarketShare        Percent  `json:"market_share"`
}

type CustomerSegment struct {
	AgeGroup                string  `json:"age_group" validate:"required"`
	IncomeLevel             string  `json:"income_level" validate:"required"`
	CustomerCount           Count   `json:"customer_count"`
	TotalPurchases          Count   `json:"total_purchases"`
	TotalUnits              Count   `json:"total_units"`
	AvgPurchasesPerCustomer float64 `json:"avg_purchases_per_customer"`
	AvgUnitsPerPurchase     float64 `json:"avg_units_per_purchase"`
}

type InventoryStatus struct {
	ProductName           string  `json:"product_name" validate:"required"`
	Category              string  `json:"category"`
	RetailerLocations     Count   `json:"retailer_locations"`
	TotalStock            Count   `json:"total_stock"`
	AvgStockPerLocation   float64 `json:"avg_stock_per_location"`
	LocationsBelowReorder Count   `json:"locations_below_reorder"`
}
