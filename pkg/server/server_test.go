package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/fmcg-atlas/pkg/models/api"
	"github.com/de-tools/fmcg-atlas/pkg/services"
	"github.com/de-tools/fmcg-atlas/pkg/services/config"
	"github.com/de-tools/fmcg-atlas/pkg/store/source"
)

const insightsJSON = `{
  "statistical_summary": {"total_transactions": 15234, "total_revenue": 5250000, "avg_transaction_value": 344.62, "active_retailers": 120, "products_sold": 87, "avg_discount_rate": 5.5},
  "sales_by_category": [{"category": "Beverages", "transactions": 4000, "revenue": 1500000, "revenue_pct": 28.57}],
  "monthly_trends": [{"month": "2024-01", "revenue": 410000, "transactions": 1200}],
  "top_products": [{"product_name": "Cola 1L", "category": "Beverages", "total_quantity": 1200, "total_revenue": 45000}],
  "retailer_performance": [],
  "regional_sales": [{"state": "Lagos", "retailer_count": 40, "revenue": 2000000, "market_share": 38.1}],
  "customer_demographics": [],
  "inventory_status": []
}`

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var result T
		err := json.Unmarshal(data, &result)
		return result, err
	}
}

func newReportServer(t *testing.T, fetches *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		switch r.URL.Path {
		case source.InsightsPath:
			_, _ = w.Write([]byte(insightsJSON))
		case source.ForecastPath:
			http.Error(w, "upstream down", http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	var fetches atomic.Int32
	reports := newReportServer(t, &fetches)
	defer reports.Close()

	svc := services.NewWithSource(
		source.NewHTTPSource(reports.URL, time.Second),
		config.SourceConfig{Timeout: time.Second},
	)
	router := ConfigureRouter(Config{
		Addr:           ":8080",
		RequestTimeout: 5 * time.Second,
		RateLimit:      1000,
		Dependencies: Dependencies{
			Insights: svc.Insights,
			Forecast: svc.Forecast,
			Logger:   logger,
		},
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "Health",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"status":"ok"}`, string(body))
			},
		},
		{
			name:           "Dashboard",
			path:           "/api/v1/dashboard",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				view, err := unmarshalResponse[api.DashboardView]()(body)
				require.NoError(t, err)
				dashboard := view.(api.DashboardView)
				assert.Equal(t, "FMCG Healthcare Analytics", dashboard.Title)
				assert.Equal(t, "$5.25M", dashboard.KPIs[0].Value)
				assert.Equal(t, "Lagos", dashboard.Regions[0].State)
				assert.Empty(t, dashboard.Errors)
			},
		},
		{
			name:           "DashboardSection",
			path:           "/api/v1/dashboard/sales_by_category",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				points, err := unmarshalResponse[[]api.ChartPoint]()(body)
				require.NoError(t, err)
				assert.Equal(t, "Beverages", points.([]api.ChartPoint)[0].Name)
			},
		},
		{
			name:           "UnknownSection",
			path:           "/api/v1/dashboard/bogus",
			expectedStatus: http.StatusNotFound,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"unknown section: bogus"}`, string(body))
			},
		},
		{
			name:           "ForecastUpstreamDown",
			path:           "/api/v1/forecast",
			expectedStatus: http.StatusBadGateway,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"failed to load /forecast_report.json: 503 Service Unavailable"}`, string(body))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")
			tc.check(t, body)
		})
	}

	// The insights report was fetched once for both dashboard requests.
	assert.Equal(t, int32(2), fetches.Load())
}

func TestWebAPI_RequestIDPropagated(t *testing.T) {
	router := ConfigureRouter(Config{Dependencies: Dependencies{Logger: zerolog.Nop()}})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestWebAPI_RateLimit(t *testing.T) {
	router := ConfigureRouter(Config{RateLimit: 2, Dependencies: Dependencies{Logger: zerolog.Nop()}})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

type blockingInsights struct{}

func (blockingInsights) Dashboard(ctx context.Context) (*api.DashboardView, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingInsights) Section(ctx context.Context, _ string) (any, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// headerCounter records every WriteHeader call made on the response.
type headerCounter struct {
	*httptest.ResponseRecorder
	calls int
}

func (h *headerCounter) WriteHeader(code int) {
	h.calls++
	h.ResponseRecorder.WriteHeader(code)
}

func TestWebAPI_RequestTimeout(t *testing.T) {
	// Given a dashboard that only returns once its context is done
	router := ConfigureRouter(Config{
		RequestTimeout: 50 * time.Millisecond,
		Dependencies:   Dependencies{Insights: blockingInsights{}, Logger: zerolog.Nop()},
	})

	// When the request deadline passes
	rec := &headerCounter{ResponseRecorder: httptest.NewRecorder()}
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	// Then a single 504 with a JSON error body is written
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, 1, rec.calls)
	assert.JSONEq(t, `{"error":"context deadline exceeded"}`, rec.Body.String())
}
