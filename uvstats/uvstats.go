package uvstats

import (
	"errors"
	"sort"
	"time"

	"github.com/uvboard/uvboard/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrEmptySeries = errors.New("no data points to summarize")

// Severity buckets a series by its maximum reading.
type Severity string

const (
	SeverityHigh     Severity = "High"
	SeverityModerate Severity = "Moderate"
	SeverityLow      Severity = "Low"
)

// UV index thresholds separating the severity buckets.
const (
	HighThreshold     = 10.0
	ModerateThreshold = 7.0
)

// Summary holds the aggregate statistics of a series value column.
type Summary struct {
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
}

// Summarize computes mean/max/min over the table's value column. An empty
// table is an error rather than a NaN-valued summary.
func Summarize(tb *series.Table) (Summary, error) {
	if tb == nil || tb.Len() == 0 {
		return Summary{}, ErrEmptySeries
	}
	return Summary{
		Mean: stat.Mean(tb.V, nil),
		Max:  floats.Max(tb.V),
		Min:  floats.Min(tb.V),
	}, nil
}

// ClassifySeverity maps the maximum reading to a severity bucket.
func ClassifySeverity(s Summary) Severity {
	switch {
	case s.Max > HighThreshold:
		return SeverityHigh
	case s.Max > ModerateThreshold:
		return SeverityModerate
	default:
		return SeverityLow
	}
}

// Advice returns the exposure recommendation for a severity bucket.
func Advice(sev Severity) string {
	switch sev {
	case SeverityHigh:
		return "High UV Index Detected! Wear sunscreen and avoid prolonged sun exposure."
	case SeverityModerate:
		return "Moderate UV Index Detected! Consider wearing a hat and sunglasses."
	default:
		return "Low UV Index Detected! Enjoy the outdoors safely."
	}
}

// Bucket is one heatmap cell: the mean of all readings sharing a calendar
// date. Weekend and Holiday are filled in by AnnotateCalendar.
type Bucket struct {
	Date    time.Time `json:"date"`
	Mean    float64   `json:"mean"`
	Weekend bool      `json:"weekend"`
	Holiday string    `json:"holiday,omitempty"`
}

// PivotByDate groups readings by calendar date, discarding any time portion,
// and averages readings that share a date. Buckets are returned in ascending
// date order.
func PivotByDate(tb *series.Table) []Bucket {
	grouped := make(map[time.Time][]float64)
	for i, ts := range tb.T {
		y, m, d := ts.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		grouped[day] = append(grouped[day], tb.V[i])
	}

	buckets := make([]Bucket, 0, len(grouped))
	for day, vals := range grouped {
		buckets = append(buckets, Bucket{
			Date: day,
			Mean: stat.Mean(vals, nil),
		})
	}
	sort.Slice(
		buckets,
		func(i, j int) bool {
			return buckets[i].Date.Before(buckets[j].Date)
		},
	)
	return buckets
}
