package report

import (
	"encoding/json"
	"fmt"
)

// ForecastReport is the predictive-analytics document produced by the forecasting pipeline.
type ForecastReport struct {
	Timestamp         string                      `json:"timestamp,omitempty"`
	ForecastPeriod    string                      `json:"forecast_period,omitempty"`
	ForecastHorizon   string                      `json:"forecast_horizon,omitempty"`
	RevenueForecast   *RevenueForecast            `json:"revenue_forecast" validate:"required"`
	InventoryForecast map[string]ProductForecast  `json:"inventory_forecast" validate:"required,dive"`
	CategoryForecast  map[string]CategoryForecast `json:"category_forecast" validate:"required,dive"`
	QuarterlyMetrics  *QuarterlyMetrics           `json:"quarterly_metrics" validate:"required"`
	Summary           *ForecastSummary            `json:"summary" validate:"required"`
}

// RevenueForecast holds index-aligned sequences: the i-th date pairs with the
// i-th value and bounds.
type RevenueForecast struct {
	ForecastDates  []string   `json:"forecast_dates" validate:"required"`
	ForecastValues []Currency `json:"forecast_values" validate:"required"`
	LowerBound     []Currency `json:"lower_bound" validate:"required"`
	UpperBound     []Currency `json:"upper_bound" validate:"required"`
	MAE            Currency   `json:"mae"`
	RMSE           Currency   `json:"rmse"`
	ModelInfo      *ModelInfo `json:"model_info" validate:"required"`
}

type ModelInfo struct {
	ModelType     string   `json:"model_type"`
	HistoricalAvg Currency `json:"historical_avg"`
	HistoricalStd Currency `json:"historical_std"`
	LastValue     Currency `json:"last_value"`
}

type ProductForecast struct {
	ProductName      string    `json:"product_name" validate:"required"`
	Category         string    `json:"category"`
	ForecastUnits    []float64 `json:"forecast_units"`
	AvgMonthlyDemand float64   `json:"avg_monthly_demand"`
	ReorderPoint     float64   `json:"reorder_point"`
	SafetyStock      float64   `json:"safety_stock"`
	TotalRequired    float64   `json:"total_required"`
}

type CategoryForecast struct {
	ForecastRevenue []Currency `json:"forecast_revenue"`
	TotalForecast   Currency   `json:"total_forecast"`
	AvgMonthly      Currency   `json:"avg_monthly"`
	GrowthRate      Percent    `json:"growth_rate"`
}

type QuarterlyMetrics struct {
	ForecastQuarterRevenue Currency            `json:"forecast_quarter_revenue"`
	ForecastMonthlyAvg     Currency            `json:"forecast_monthly_avg"`
	LastQuarterRevenue     Currency            `json:"last_quarter_revenue"`
	QoQChangePercent       Percent             `json:"qoq_change_percent"`
	HistoricalQuarters     []HistoricalQuarter `json:"historical_quarters" validate:"required,dive"`
}

type HistoricalQuarter struct {
	Quarter          Label    `json:"quarter" validate:"required"`
	Revenue          Currency `json:"revenue"`
	UnitsSold        Count    `json:"units_sold"`
	TransactionCount Count    `json:"transaction_count"`
	AvgOrderValue    Currency `json:"avg_order_value"`
}

type ForecastSummary struct {
	TotalForecastRevenue  Currency         `json:"total_forecast_revenue"`
	ConfidenceLevel       string           `json:"confidence_level"`
	ModelAccuracy         ModelAccuracy    `json:"model_accuracy"`
	TopForecastCategories []RankedCategory `json:"top_forecast_categories" validate:"dive"`
}

type ModelAccuracy struct {
	MAE  Currency `json:"mae"`
	RMSE Currency `json:"rmse"`
}

// RankedCategory is encoded on the wire as a two element array: [name, forecast].
type RankedCategory struct {
	Name     string           `validate:"required"`
	Forecast CategoryForecast `validate:"-"`
}

func (r *RankedCategory) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("ranked category: expected [name, forecast] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.Name); err != nil {
		return fmt.Errorf("ranked category name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &r.Forecast); err != nil {
		return fmt.Errorf("ranked category %q: %w", r.Name, err)
	}
	return nil
}

func (r RankedCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Name, r.Forecast})
}
