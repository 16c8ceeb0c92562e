package report

import (
	"encoding/json"
	"fmt"
	"math"
)

// Currency is a USD amount.
type Currency float64

// Percent is expressed in points: 12.5 means 12.5%.
type Percent float64

// Count is a whole quantity. The producers aggregate with pandas and may emit
// counts as floats, so any JSON number is accepted and rounded.
type Count int64

func (c *Count) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("count: not a finite number: %s", data)
	}
	r := math.Round(f)
	if r < math.MinInt64 || r >= math.MaxInt64 {
		return fmt.Errorf("count: out of range: %s", data)
	}
	*c = Count(r)
	return nil
}

// Label is a display label that the producer emits either as a string
// ("2024Q4") or as a bare number.
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("label: expected string or number, got %s", data)
	}
	*l = Label(n.String())
	return nil
}
