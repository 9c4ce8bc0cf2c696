package labels

import (
	"math"

	"github.com/dustin/go-humanize"

	"insights-display-service/internal/insights/core/domain"
)

const missingValue = "-"

// ValueFormatter renders a property value for display, e.g. as currency or
// a duration. A formatter with nothing to add returns the number itself,
// as a number or as its decimal string.
type ValueFormatter func(property string, value float64) domain.Value

// CountRenderer renders an aggregated count.
type CountRenderer func(value float64) domain.Value

// FormatAggregationValue renders an aggregated series value.
//
// A nil value renders as "-". When formatValue returns something loosely
// equal to the value it has not changed it, and renderCount is used
// instead. A nil renderCount uses HumanFriendlyNumber. A list result is
// reduced to its first element.
func FormatAggregationValue(
	property string,
	value *float64,
	renderCount CountRenderer,
	formatValue ValueFormatter,
) domain.Value {
	if value == nil {
		return domain.String(missingValue)
	}
	if renderCount == nil {
		renderCount = RenderHumanFriendly
	}

	var formatted domain.Value
	if property != "" && formatValue != nil {
		formatted = formatValue(property, *value)
		if formatted.LooseEqualsNumber(*value) {
			formatted = renderCount(*value)
		}
	} else {
		formatted = renderCount(*value)
	}

	if items, ok := formatted.AsList(); ok {
		if len(items) == 0 {
			return domain.Null()
		}
		return items[0]
	}
	return formatted
}

// HumanFriendlyNumber rounds to two decimals and adds thousands
// separators: 1234.5678 -> "1,234.57".
func HumanFriendlyNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.FormatNumber(v)
	}
	rounded := math.Round(v*100) / 100
	if rounded == 0 {
		return "0"
	}
	return humanize.CommafWithDigits(rounded, 2)
}

func RenderHumanFriendly(v float64) domain.Value {
	return domain.String(HumanFriendlyNumber(v))
}
