// Package format renders report figures the way the dashboard displays them:
// US English grouping, whole-dollar currency and two-decimal percentages.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unavailable is displayed for values that cannot be computed, such as a
// ratio over a zero denominator.
const Unavailable = "N/A"

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats v as whole US dollars: 1234567 -> "$1,234,567".
func Currency(v float64) string {
	if !finite(v) {
		return Unavailable
	}
	d := decimal.NewFromFloat(v).Round(0)
	return sign(d) + "$" + Integer(d.Abs().IntPart())
}

// Number formats v with grouping and at most three fraction digits,
// dropping trailing zeros: 1234567.5 -> "1,234,567.5".
func Number(v float64) string {
	if !finite(v) {
		return Unavailable
	}
	d := decimal.NewFromFloat(v).Round(3)
	abs := d.Abs()
	out := sign(d) + Integer(abs.Truncate(0).IntPart())
	if _, frac, ok := strings.Cut(abs.String(), "."); ok {
		out += "." + frac
	}
	return out
}

// Integer formats n with thousands separators.
func Integer(n int64) string {
	return printer.Sprintf("%d", n)
}

// Percentage formats v, already in points, with two decimals: 12.345 -> "12.35%".
func Percentage(v float64) string {
	if !finite(v) {
		return Unavailable
	}
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// SignedPercentage is Percentage with an explicit "+" on positive values.
func SignedPercentage(v float64) string {
	if v > 0 && finite(v) {
		return "+" + Percentage(v)
	}
	return Percentage(v)
}

// SignedInteger formats a count delta: 3 -> "+3".
func SignedInteger(n int64) string {
	if n > 0 {
		return "+" + Integer(n)
	}
	return Integer(n)
}

// Millions formats v in millions of dollars: 5250000 -> "$5.25M".
func Millions(v float64) string {
	if !finite(v) {
		return Unavailable
	}
	d := decimal.NewFromFloat(v).Shift(-6)
	return sign(d.Round(2)) + "$" + d.Abs().StringFixed(2) + "M"
}

// Money formats v as dollars and cents without grouping: 344.617 -> "$344.62".
func Money(v float64) string {
	if !finite(v) {
		return Unavailable
	}
	d := decimal.NewFromFloat(v)
	return sign(d.Round(2)) + "$" + d.Abs().StringFixed(2)
}

func sign(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-"
	}
	return ""
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
