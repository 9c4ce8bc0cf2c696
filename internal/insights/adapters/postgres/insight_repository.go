package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"slices"
	"time"

	"insights-display-service/internal/insights/core/domain"
	"insights-display-service/internal/insights/core/labels"
	"insights-display-service/internal/insights/core/ports"
)

// MaxBreakdownValues caps the number of property values returned for a
// property breakdown; the most frequent values win.
const MaxBreakdownValues = 25

// numericPattern matches JSON numbers stored as metadata text.
const numericPattern = `^-?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?$`

var truncUnits = map[string]bool{"hour": true, "day": true, "week": true, "month": true}

type InsightRepository struct {
	db DB
}

func NewInsightRepository(db DB) *InsightRepository {
	return &InsightRepository{db: db}
}

var _ ports.InsightReaderPort = (*InsightRepository)(nil)

// query collects positional arguments while a statement is being built.
type query struct {
	where string
	args  []any
}

func (q *query) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (r *InsightRepository) QueryInsight(ctx context.Context, f ports.InsightFilter) (*domain.InsightResult, error) {
	q := &query{}
	q.where = fmt.Sprintf("e.event_name = %s AND e.event_time BETWEEN %s AND %s",
		q.arg(f.EventName),
		q.arg(time.Unix(f.From, 0).UTC()),
		q.arg(time.Unix(f.To, 0).UTC()),
	)
	if f.Channel != nil {
		q.where += " AND e.channel = " + q.arg(*f.Channel)
	}

	agg := r.aggregateExpr(q, f)

	result := &domain.InsightResult{
		EventName:     f.EventName,
		From:          f.From,
		To:            f.To,
		BreakdownType: f.BreakdownType,
		Breakdown:     f.Breakdown,
		Histogram:     f.HistogramBins > 0,
		Math:          f.Math,
		MathProperty:  f.MathProperty,
	}

	if err := r.queryTotals(ctx, q, agg, result); err != nil {
		return nil, err
	}

	var err error
	switch {
	case f.BreakdownType == domain.BreakdownNone:
		return result, nil
	case f.BreakdownType == domain.BreakdownEvent && f.HistogramBins > 0:
		result.Groups, err = r.queryHistogram(ctx, q, agg, f.Breakdown, f.HistogramBins)
	case f.BreakdownType == domain.BreakdownEvent:
		result.Groups, err = r.queryByProperty(ctx, q, agg, f.Breakdown)
	case f.BreakdownType == domain.BreakdownCohort:
		result.Groups, err = r.queryByCohort(ctx, q, agg, result)
	case f.BreakdownType == domain.BreakdownTime:
		result.Groups, err = r.queryByTime(ctx, q, agg, f.Breakdown)
	default:
		// Aslında buraya gelmemeli; usecase validasyonu zaten yapıyor.
		return nil, fmt.Errorf("unsupported breakdown type: %s", f.BreakdownType)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// aggregateExpr is the per-group series value: the event count, or the sum
// of a numeric metadata property ignoring non-numeric values.
func (r *InsightRepository) aggregateExpr(q *query, f ports.InsightFilter) string {
	if f.Math != domain.MathSum {
		return "COUNT(*)::float8"
	}
	key := q.arg(f.MathProperty) + "::text"
	pattern := q.arg(numericPattern)
	return fmt.Sprintf("SUM(CASE WHEN e.metadata->>%s ~ %s THEN (e.metadata->>%s)::float8 END)", key, pattern, key)
}

func (r *InsightRepository) queryTotals(ctx context.Context, q *query, agg string, res *domain.InsightResult) error {
	stmt := `
SELECT
    COUNT(*) AS total_count,
    COUNT(DISTINCT e.user_id) AS unique_users,
    ` + agg + ` AS aggregate
FROM events e
WHERE ` + q.where

	rows, err := r.db.QueryContext(ctx, stmt, q.args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		var total, unique int64
		var aggregate sql.NullFloat64
		if err := rows.Scan(&total, &unique, &aggregate); err != nil {
			return err
		}
		res.TotalCount = total
		res.UniqueUsers = unique
		res.Aggregate = nullFloat(aggregate)
	}

	return rows.Err()
}

func (r *InsightRepository) queryByProperty(ctx context.Context, q *query, agg, property string) ([]domain.ResultGroup, error) {
	// ->> yerine -> kullanıyoruz ki JSON tipi (sayı/string/liste) korunsun
	stmt := fmt.Sprintf(`
SELECT
    (e.metadata->%s)::text AS value,
    COUNT(*) AS total_count,
    COUNT(DISTINCT e.user_id) AS unique_users,
    %s AS aggregate
FROM events e
WHERE %s
GROUP BY value
ORDER BY total_count DESC, value
LIMIT %d`, q.arg(property)+"::text", agg, q.where, MaxBreakdownValues)

	rows, err := r.db.QueryContext(ctx, stmt, q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.ResultGroup
	for rows.Next() {
		var raw sql.NullString
		var g domain.ResultGroup
		var aggregate sql.NullFloat64
		if err := rows.Scan(&raw, &g.Count, &g.UniqueUsers, &aggregate); err != nil {
			return nil, err
		}

		g.Value = domain.String("")
		if raw.Valid {
			if err := g.Value.UnmarshalJSON([]byte(raw.String)); err != nil {
				return nil, fmt.Errorf("decode breakdown value %q: %w", raw.String, err)
			}
		}
		g.Aggregate = nullFloat(aggregate)
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

type numericRow struct {
	value     sql.NullFloat64
	count     int64
	unique    int64
	aggregate sql.NullFloat64
}

// queryHistogram reads per-value counts of a numeric property and folds them
// into equal width buckets. Values that are missing or not numeric land in
// the [nan,nan] bucket.
func (r *InsightRepository) queryHistogram(ctx context.Context, q *query, agg, property string, bins int) ([]domain.ResultGroup, error) {
	key := q.arg(property) + "::text"
	stmt := fmt.Sprintf(`
SELECT
    CASE WHEN e.metadata->>%s ~ %s THEN (e.metadata->>%s)::float8 END AS value,
    COUNT(*) AS total_count,
    COUNT(DISTINCT e.user_id) AS unique_users,
    %s AS aggregate
FROM events e
WHERE %s
GROUP BY 1
ORDER BY 1 NULLS LAST`, key, q.arg(numericPattern), key, agg, q.where)

	rows, err := r.db.QueryContext(ctx, stmt, q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []numericRow
	for rows.Next() {
		var row numericRow
		if err := rows.Scan(&row.value, &row.count, &row.unique, &row.aggregate); err != nil {
			return nil, err
		}
		values = append(values, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bucketize(values, bins), nil
}

func bucketize(values []numericRow, bins int) []domain.ResultGroup {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v.value.Valid {
			lo = math.Min(lo, v.value.Float64)
			hi = math.Max(hi, v.value.Float64)
		}
	}

	var groups []domain.ResultGroup
	var other *domain.ResultGroup

	if lo <= hi {
		width := (hi - lo) / float64(bins)
		if width == 0 {
			bins, width = 1, 1
		}
		groups = make([]domain.ResultGroup, bins)
		for i := range groups {
			start := lo + float64(i)*width
			end := start + width
			if i == bins-1 {
				end = math.Max(end, hi)
			}
			groups[i].Value = domain.String(labels.EncodeHistogramBucket(&start, &end))
		}
		for _, v := range values {
			if !v.value.Valid {
				continue
			}
			idx := min(int((v.value.Float64-lo)/width), bins-1)
			// kullanıcılar bucket içinde tekrar sayılabilir, yaklaşık değer
			addTo(&groups[idx], v)
		}
	}

	for _, v := range values {
		if v.value.Valid {
			continue
		}
		if other == nil {
			other = &domain.ResultGroup{Value: domain.String(labels.EncodeHistogramBucket(nil, nil))}
		}
		addTo(other, v)
	}

	groups = slices.DeleteFunc(groups, func(g domain.ResultGroup) bool { return g.Count == 0 })
	if other != nil {
		groups = append(groups, *other)
	}
	return groups
}

func addTo(g *domain.ResultGroup, row numericRow) {
	g.Count += row.count
	g.UniqueUsers += row.unique
	if row.aggregate.Valid {
		sum := row.aggregate.Float64
		if g.Aggregate != nil {
			sum += *g.Aggregate
		}
		g.Aggregate = &sum
	}
}

// queryByCohort returns one group per cohort with matching events, preceded
// by the all-users group (cohort id 0) built from the totals.
func (r *InsightRepository) queryByCohort(ctx context.Context, q *query, agg string, res *domain.InsightResult) ([]domain.ResultGroup, error) {
	stmt := `
SELECT
    cp.cohort_id,
    COUNT(*) AS total_count,
    COUNT(DISTINCT e.user_id) AS unique_users,
    ` + agg + ` AS aggregate
FROM events e
JOIN cohort_people cp ON cp.user_id = e.user_id
WHERE ` + q.where + `
GROUP BY cp.cohort_id
ORDER BY cp.cohort_id`

	rows, err := r.db.QueryContext(ctx, stmt, q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []domain.ResultGroup{{
		Value:       domain.Int(0),
		Count:       res.TotalCount,
		UniqueUsers: res.UniqueUsers,
		Aggregate:   res.Aggregate,
	}}
	for rows.Next() {
		var id int64
		var g domain.ResultGroup
		var aggregate sql.NullFloat64
		if err := rows.Scan(&id, &g.Count, &g.UniqueUsers, &aggregate); err != nil {
			return nil, err
		}
		g.Value = domain.Int(id)
		g.Aggregate = nullFloat(aggregate)
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *InsightRepository) queryByTime(ctx context.Context, q *query, agg, interval string) ([]domain.ResultGroup, error) {
	if !truncUnits[interval] {
		return nil, fmt.Errorf("unsupported interval: %s", interval)
	}

	stmt := fmt.Sprintf(`
SELECT
    date_trunc('%s', e.event_time) AS bucket,
    COUNT(*) AS total_count,
    COUNT(DISTINCT e.user_id) AS unique_users,
    %s AS aggregate
FROM events e
WHERE %s
GROUP BY bucket
ORDER BY bucket
`, interval, agg, q.where)

	rows, err := r.db.QueryContext(ctx, stmt, q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.ResultGroup
	for rows.Next() {
		var ts time.Time
		var g domain.ResultGroup
		var aggregate sql.NullFloat64
		if err := rows.Scan(&ts, &g.Count, &g.UniqueUsers, &aggregate); err != nil {
			return nil, err
		}
		g.Value = domain.String(ts.UTC().Format(time.RFC3339))
		g.Aggregate = nullFloat(aggregate)
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
