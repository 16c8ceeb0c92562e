package api

// ChartPoint is one slice of a pie or bar chart.
type ChartPoint struct {
	Name       string   `json:"name"`
	Value      float64  `json:"value"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// Chart is laid out the way Chart.js expects it.
type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderDash      []int     `json:"borderDash,omitempty"`
	BorderWidth     int       `json:"borderWidth"`
	Fill            bool      `json:"fill"`
	Tension         float64   `json:"tension,omitempty"`
}
