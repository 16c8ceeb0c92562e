package report

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insightsJSON = `{
  "statistical_summary": {
    "total_transactions": 15234.0,
    "total_revenue": 5250000.75,
    "avg_transaction_value": 344.62,
    "active_retailers": 120,
    "products_sold": 87,
    "avg_discount_rate": 5.5
  },
  "sales_by_category": [
    {"category": "Beverages", "transactions": 4000, "units_sold": 12000, "revenue": 1500000, "avg_order_value": 375, "revenue_pct": 28.57}
  ],
  "monthly_trends": [
    {"month": "2024-01", "monthly_revenue": 410000.5, "transaction_count": 1200, "units_sold": 3400, "avg_order_value": 341.67},
    {"month": "2024-02", "revenue": 420000, "transactions": 1250, "units_sold": 3500, "avg_order_value": 336}
  ],
  "top_products": [],
  "retailer_performance": [],
  "regional_sales": [],
  "customer_demographics": [],
  "inventory_status": []
}`

const forecastJSON = `{
  "timestamp": "2024-12-31T10:00:00",
  "forecast_period": "Q1 2025 (Jan-Mar)",
  "forecast_horizon": "3 months",
  "revenue_forecast": {
    "forecast_dates": ["2025-01", "2025-02", "2025-03"],
    "forecast_values": [410000, 420000, 430000],
    "lower_bound": [380000, 385000, 390000],
    "upper_bound": [440000, 455000, 470000],
    "mae": 12000,
    "rmse": 15000,
    "model_info": {"model_type": "ARIMA(1,1,1)", "historical_avg": 400000, "historical_std": 25000, "last_value": 405000}
  },
  "inventory_forecast": {
    "P001": {"product_name": "Cola 1L", "category": "Beverages", "forecast_units": [100, 110, 120], "avg_monthly_demand": 110, "reorder_point": 80, "safety_stock": 20, "total_required": 350}
  },
  "category_forecast": {
    "Beverages": {"forecast_revenue": [100, 200, 300], "total_forecast": 600, "avg_monthly": 200, "growth_rate": 4.2}
  },
  "quarterly_metrics": {
    "forecast_quarter_revenue": 1260000,
    "forecast_monthly_avg": 420000,
    "last_quarter_revenue": 1200000,
    "qoq_change_percent": 5,
    "historical_quarters": [
      {"quarter": "2024Q3", "revenue": 1150000, "units_sold": 9000, "transaction_count": 3300, "avg_order_value": 348.48},
      {"quarter": 20244, "revenue": 1200000, "units_sold": 9500, "transaction_count": 3400, "avg_order_value": 352.94}
    ]
  },
  "summary": {
    "total_forecast_revenue": 1260000,
    "confidence_level": "95%",
    "model_accuracy": {"mae": 12000, "rmse": 15000},
    "top_forecast_categories": [["Beverages", {"forecast_revenue": [100, 200, 300], "total_forecast": 600, "avg_monthly": 200, "growth_rate": 4.2}]]
  }
}`

func TestDecodeInsights(t *testing.T) {
	// Given a well-formed insights payload using both monthly trend spellings
	// When it is decoded
	r, err := DecodeInsights([]byte(insightsJSON))

	// Then every field lands in its typed slot
	require.NoError(t, err)
	assert.Equal(t, Count(15234), r.StatisticalSummary.TotalTransactions)
	assert.Equal(t, Currency(5250000.75), r.StatisticalSummary.TotalRevenue)
	require.Len(t, r.MonthlyTrends, 2)
	assert.Equal(t, Currency(410000.5), r.MonthlyTrends[0].Revenue)
	assert.Equal(t, Count(1200), r.MonthlyTrends[0].Transactions)
	assert.Equal(t, Currency(420000), r.MonthlyTrends[1].Revenue)
	assert.Empty(t, r.TopProducts)
}

func TestDecodeInsights_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		problem string
	}{
		{
			name:    "missing summary",
			payload: `{"sales_by_category": [], "monthly_trends": [], "top_products": [], "retailer_performance": [], "regional_sales": [], "customer_demographics": [], "inventory_status": []}`,
			problem: "statistical_summary is missing",
		},
		{
			name:    "missing collection",
			payload: `{"statistical_summary": {}, "sales_by_category": [], "monthly_trends": [], "top_products": [], "retailer_performance": [], "regional_sales": [], "customer_demographics": []}`,
			problem: "inventory_status is missing",
		},
		{
			name:    "record without name",
			payload: `{"statistical_summary": {}, "sales_by_category": [{"revenue": 1}], "monthly_trends": [], "top_products": [], "retailer_performance": [], "regional_sales": [], "customer_demographics": [], "inventory_status": []}`,
			problem: "sales_by_category[0].category is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInsights([]byte(tt.payload))

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, Insights, schemaErr.Report)
			assert.Contains(t, schemaErr.Problems, tt.problem)
		})
	}
}

func TestDecodeInsights_WrongType(t *testing.T) {
	_, err := DecodeInsights([]byte(`{"statistical_summary": {"total_revenue": "lots"}}`))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Empty(t, schemaErr.Problems)
	assert.Contains(t, err.Error(), "insights report: invalid schema")
}

func TestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Count
		wantErr string
	}{
		{name: "integer", input: `42`, want: 42},
		{name: "float rounds", input: `15233.6`, want: 15234},
		{name: "negative", input: `-3`, want: -3},
		{name: "above int64", input: `1e19`, wantErr: "count: out of range: 1e19"},
		{name: "below int64", input: `-1e19`, wantErr: "count: out of range: -1e19"},
		{name: "string", input: `"12"`, wantErr: "json: cannot unmarshal string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Count
			err := json.Unmarshal([]byte(tt.input), &c)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestDecodeInsights_CountOutOfRange(t *testing.T) {
	_, err := DecodeInsights([]byte(`{"statistical_summary": {"total_transactions": 1e19}}`))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, err.Error(), "count: out of range")
}

func TestDecodeForecast(t *testing.T) {
	r, err := DecodeForecast([]byte(forecastJSON))

	require.NoError(t, err)
	assert.Equal(t, "Q1 2025 (Jan-Mar)", r.ForecastPeriod)
	assert.Len(t, r.RevenueForecast.ForecastDates, 3)
	assert.Equal(t, "ARIMA(1,1,1)", r.RevenueForecast.ModelInfo.ModelType)
	assert.Equal(t, 350.0, r.InventoryForecast["P001"].TotalRequired)
	require.Len(t, r.QuarterlyMetrics.HistoricalQuarters, 2)
	assert.Equal(t, Label("2024Q3"), r.QuarterlyMetrics.HistoricalQuarters[0].Quarter)
	assert.Equal(t, Label("20244"), r.QuarterlyMetrics.HistoricalQuarters[1].Quarter)
	require.Len(t, r.Summary.TopForecastCategories, 1)
	assert.Equal(t, "Beverages", r.Summary.TopForecastCategories[0].Name)
	assert.Equal(t, Currency(600), r.Summary.TopForecastCategories[0].Forecast.TotalForecast)
}

func TestDecodeForecast_MismatchedLengths(t *testing.T) {
	// Given a forecast whose upper bound is one element short
	payload := []byte(`{
	  "revenue_forecast": {
	    "forecast_dates": ["2025-01", "2025-02"],
	    "forecast_values": [1, 2],
	    "lower_bound": [0, 1],
	    "upper_bound": [2],
	    "model_info": {}
	  },
	  "inventory_forecast": {},
	  "category_forecast": {},
	  "quarterly_metrics": {"historical_quarters": []},
	  "summary": {}
	}`)

	// When it is decoded
	_, err := DecodeForecast(payload)

	// Then the length mismatch is reported once, at load
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, Forecast, schemaErr.Report)
	assert.Equal(t, []string{"revenue_forecast.upper_bound length differs from forecast_dates"}, schemaErr.Problems)
}

func TestRankedCategory_BadPair(t *testing.T) {
	var rc RankedCategory
	err := rc.UnmarshalJSON([]byte(`["Beverages"]`))
	assert.Error(t, err)
}
