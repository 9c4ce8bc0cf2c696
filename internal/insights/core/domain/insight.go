package domain

type Math string

const (
	MathTotal Math = "total" // event count
	MathSum   Math = "sum"   // sum of a numeric property
)

type InsightResult struct {
	EventName string
	From      int64 // unix second
	To        int64 // unix second

	BreakdownType BreakdownType
	Breakdown     string // property key or time interval
	Histogram     bool

	Math         Math
	MathProperty string

	TotalCount  int64
	UniqueUsers int64
	Aggregate   *float64 // nil when a sum had no numeric rows

	Groups []ResultGroup // breakdown bazlı gruplar
}

type ResultGroup struct {
	Value       Value // raw breakdown value: property value, cohort id, bucket or time key
	Count       int64
	UniqueUsers int64
	Aggregate   *float64
}
