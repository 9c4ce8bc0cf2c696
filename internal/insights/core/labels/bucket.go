package labels

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"insights-display-service/internal/insights/core/domain"
)

var ErrMalformedBucket = errors.New("malformed histogram bucket")

const nanToken = "nan"

// DecodeHistogramBucket parses a histogram breakdown value of the form
// "[start,end]". Each bound is a JSON number or one of the tokens nan/null,
// which decode to a null bound.
func DecodeHistogramBucket(raw string) (start, end domain.Value, err error) {
	body := strings.TrimSpace(raw)
	if !strings.HasPrefix(body, "[") || !strings.HasSuffix(body, "]") {
		return domain.Null(), domain.Null(), fmt.Errorf("%w: %q is not a list", ErrMalformedBucket, raw)
	}

	parts := strings.Split(body[1:len(body)-1], ",")
	if len(parts) != 2 {
		return domain.Null(), domain.Null(), fmt.Errorf("%w: %q has %d elements, want 2", ErrMalformedBucket, raw, len(parts))
	}

	bounds := make([]domain.Value, 2)
	for i, part := range parts {
		bound, err := decodeBound(strings.TrimSpace(part))
		if err != nil {
			return domain.Null(), domain.Null(), fmt.Errorf("%w: %q: %v", ErrMalformedBucket, raw, err)
		}
		bounds[i] = bound
	}
	return bounds[0], bounds[1], nil
}

func decodeBound(tok string) (domain.Value, error) {
	switch tok {
	case nanToken, "null":
		return domain.Null(), nil
	case "":
		return domain.Null(), errors.New("empty bound")
	}
	var n float64
	if err := json.Unmarshal([]byte(tok), &n); err != nil {
		return domain.Null(), fmt.Errorf("bound %q is not a number", tok)
	}
	return domain.Number(n), nil
}

// EncodeHistogramBucket is the inverse of DecodeHistogramBucket; nil bounds
// and non-finite bounds are written as nan.
func EncodeHistogramBucket(start, end *float64) string {
	return "[" + encodeBound(start) + "," + encodeBound(end) + "]"
}

func encodeBound(b *float64) string {
	if b == nil || math.IsNaN(*b) || math.IsInf(*b, 0) {
		return nanToken
	}
	return domain.FormatNumber(*b)
}
