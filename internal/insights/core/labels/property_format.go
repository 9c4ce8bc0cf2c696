package labels

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"insights-display-service/internal/insights/core/domain"
)

// PropertyFormat is the display format configured for a numeric property.
type PropertyFormat string

const (
	FormatNumeric    PropertyFormat = "numeric"
	FormatDuration   PropertyFormat = "duration"
	FormatDurationMs PropertyFormat = "duration_ms"
	FormatPercentage PropertyFormat = "percentage"
	FormatCurrency   PropertyFormat = "currency"
	FormatBytes      PropertyFormat = "bytes"
)

var ErrUnknownPropertyFormat = errors.New("unknown property format")

func ParsePropertyFormat(s string) (PropertyFormat, error) {
	switch f := PropertyFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatNumeric, FormatDuration, FormatDurationMs, FormatPercentage, FormatCurrency, FormatBytes:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPropertyFormat, s)
	}
}

// NewPropertyFormatter returns a ValueFormatter driven by a property ->
// format table. Property names match case-insensitively. Properties without
// a format, and numeric ones, come back as their plain decimal string.
func NewPropertyFormatter(formats map[string]PropertyFormat) ValueFormatter {
	table := make(map[string]PropertyFormat, len(formats))
	for k, v := range formats {
		table[strings.ToLower(k)] = v
	}

	return func(property string, value float64) domain.Value {
		switch table[strings.ToLower(property)] {
		case FormatDuration:
			return domain.String(humanDuration(value))
		case FormatDurationMs:
			if math.Abs(value) < 1000 {
				return domain.String(domain.FormatNumber(math.Round(value)) + "ms")
			}
			return domain.String(humanDuration(value / 1000))
		case FormatPercentage:
			return domain.String(HumanFriendlyNumber(value) + "%")
		case FormatCurrency:
			return domain.String("$" + humanize.FormatFloat("#,###.##", value))
		case FormatBytes:
			if value < 0 {
				return domain.String("-" + humanize.IBytes(uint64(-value)))
			}
			return domain.String(humanize.IBytes(uint64(value)))
		default:
			return domain.String(domain.FormatNumber(value))
		}
	}
}

// humanDuration renders seconds as "1d 2h 3m 4s", skipping zero units.
func humanDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return domain.FormatNumber(seconds)
	}
	total := int64(math.Round(seconds))
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	if total == 0 {
		return "0s"
	}

	units := []struct {
		suffix string
		size   int64
	}{
		{"d", 86400},
		{"h", 3600},
		{"m", 60},
		{"s", 1},
	}

	parts := make([]string, 0, len(units))
	for _, u := range units {
		if n := total / u.size; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, u.suffix))
			total -= n * u.size
		}
	}
	return sign + strings.Join(parts, " ")
}
