package labels

import (
	"strings"

	"insights-display-service/internal/insights/core/domain"
)

const (
	allUsersLabel       = "All Users"
	otherLabel          = "Other"
	noneLabel           = "None"
	bucketSeparator     = " – "
	listValueSeparator  = "::"
	cohortTitle         = "Cohort"
	breakdownValueTitle = "Breakdown Value"
)

// FormatBreakdownLabel resolves a breakdown value to its display label.
//
// Histogram values are "[start,end]" strings whose bounds are labelled
// individually and joined with an en dash. Cohort breakdowns map 0 and "all"
// to "All Users" and other ids to the cohort name. Numbers go through
// formatValue when one is given. The only error is ErrMalformedBucket.
func FormatBreakdownLabel(
	cohorts []domain.Cohort,
	formatValue ValueFormatter,
	value domain.Value,
	breakdownKey string,
	breakdownType domain.BreakdownType,
	isHistogram bool,
) (string, error) {
	if raw, ok := value.AsString(); isHistogram && ok {
		start, end, err := DecodeHistogramBucket(raw)
		if err != nil {
			return "", err
		}
		startLabel, err := FormatBreakdownLabel(cohorts, formatValue, start, breakdownKey, breakdownType, false)
		if err != nil {
			return "", err
		}
		endLabel, err := FormatBreakdownLabel(cohorts, formatValue, end, breakdownKey, breakdownType, false)
		if err != nil {
			return "", err
		}
		return startLabel + bucketSeparator + endLabel, nil
	}

	if breakdownType == domain.BreakdownCohort {
		return cohortLabel(cohorts, value), nil
	}

	switch value.Kind() {
	case domain.KindNumber:
		n, _ := value.AsNumber()
		if formatValue == nil {
			return value.String(), nil
		}
		formatted := formatValue(breakdownKey, n)
		if formatted.IsNull() {
			return noneLabel, nil
		}
		return formatted.String(), nil
	case domain.KindString:
		s, _ := value.AsString()
		switch s {
		case nanToken:
			return otherLabel, nil
		case "":
			return noneLabel, nil
		default:
			return s, nil
		}
	case domain.KindList:
		items, _ := value.AsList()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.String()
		}
		return strings.Join(parts, listValueSeparator), nil
	default:
		return "", nil
	}
}

// Different endpoints represent the all-users cohort as 0 or "all".
func cohortLabel(cohorts []domain.Cohort, value domain.Value) string {
	if n, ok := value.AsNumber(); ok && n == 0 {
		return allUsersLabel
	}
	if s, ok := value.AsString(); ok && s == "all" {
		return allUsersLabel
	}
	for _, c := range cohorts {
		if value.LooseEqualsNumber(float64(c.ID)) {
			return c.Name
		}
	}
	if !value.Truthy() {
		return ""
	}
	return value.String()
}

// FormatBreakdownType is the column title for a breakdown.
func FormatBreakdownType(filter domain.BreakdownFilter) string {
	if filter.BreakdownType == domain.BreakdownCohort {
		return cohortTitle
	}
	if title := filter.Breakdown.String(); title != "" {
		return title
	}
	return breakdownValueTitle
}
