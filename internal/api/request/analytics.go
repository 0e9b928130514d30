package request

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mvermaat/stock-trade-tracker/internal/apperrors"
)

// AnalyticsFilter carries the parsed query parameters of the analytics
// endpoints. Zero Start/End mean an unbounded side.
type AnalyticsFilter struct {
	Start     time.Time
	End       time.Time
	AccountID string
}

// ParseAnalyticsFilter reads start, end and account query parameters.
// Dates use YYYY-MM-DD; a start after end is rejected.
func ParseAnalyticsFilter(r *http.Request) (AnalyticsFilter, error) {
	var f AnalyticsFilter
	q := r.URL.Query()

	if s := q.Get("start"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, fmt.Errorf("invalid start date: %w", err)
		}
		f.Start = start
	}
	if e := q.Get("end"); e != "" {
		end, err := time.Parse("2006-01-02", e)
		if err != nil {
			return f, fmt.Errorf("invalid end date: %w", err)
		}
		f.End = end
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.Start.After(f.End) {
		return f, apperrors.ErrInvalidDateRange
	}

	f.AccountID = q.Get("account")
	return f, nil
}
