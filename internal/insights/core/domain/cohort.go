package domain

// Cohort is a named group of users. Cohorts are only read for label lookup.
type Cohort struct {
	ID   int64
	Name string
}

type BreakdownType string

const (
	BreakdownNone   BreakdownType = ""
	BreakdownEvent  BreakdownType = "event"
	BreakdownCohort BreakdownType = "cohort"
	BreakdownTime   BreakdownType = "time"
)

// BreakdownFilter is the breakdown part of an insight query.
type BreakdownFilter struct {
	Breakdown     Value // property key, cohort ids or interval
	BreakdownType BreakdownType
}
