package api

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// KPI is a headline card. Trend and Change are only set when there is a
// prior period to compare against.
type KPI struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Trend  Trend  `json:"trend,omitempty"`
	Change string `json:"change,omitempty"`
}

// Detail is a labelled, formatted figure shown in a summary panel.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type AccuracyMetrics struct {
	MAE           string `json:"mae"`
	RMSE          string `json:"rmse"`
	MAPE          string `json:"mape"`
	Confidence    string `json:"confidence"`
	MAPEAvailable bool   `json:"mape_available"`
}
