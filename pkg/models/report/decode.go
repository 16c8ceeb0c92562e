package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	Insights = "insights"
	Forecast = "forecast"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterStructValidation(validateRevenueForecast, RevenueForecast{})
	return v
}

func validateRevenueForecast(sl validator.StructLevel) {
	rf := sl.Current().Interface().(RevenueForecast)
	n := len(rf.ForecastDates)
	if len(rf.ForecastValues) != n {
		sl.ReportError(rf.ForecastValues, "forecast_values", "ForecastValues", "eqlen", "forecast_dates")
	}
	if len(rf.LowerBound) != n {
		sl.ReportError(rf.LowerBound, "lower_bound", "LowerBound", "eqlen", "forecast_dates")
	}
	if len(rf.UpperBound) != n {
		sl.ReportError(rf.UpperBound, "upper_bound", "UpperBound", "eqlen", "forecast_dates")
	}
}

// DecodeInsights parses and validates an insights payload.
func DecodeInsights(data []byte) (*InsightsReport, error) {
	var r InsightsReport
	if err := decode(Insights, data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeForecast parses and validates a forecast payload.
func DecodeForecast(data []byte) (*ForecastReport, error) {
	var r ForecastReport
	if err := decode(Forecast, data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func decode(name string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &SchemaError{Report: name, Err: err}
	}
	if err := validate.Struct(v); err != nil {
		return &SchemaError{Report: name, Problems: describe(err), Err: err}
	}
	return nil
}

func describe(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.SplitN(fe.Namespace(), ".", 2)
		path := fe.Namespace()
		if len(field) == 2 {
			path = field[1]
		}
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is missing", path))
		case "eqlen":
			problems = append(problems, fmt.Sprintf("%s length differs from %s", path, fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s failed %s", path, fe.Tag()))
		}
	}
	return problems
}
