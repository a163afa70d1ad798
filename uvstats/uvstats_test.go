package uvstats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvboard/uvboard/series"
)

func TestSummarize(t *testing.T) {
	testData := map[string]struct {
		text     string
		expected Summary
		err      error
	}{
		"empty table": {
			text: "",
			err:  ErrEmptySeries,
		},
		"single value": {
			text:     "7",
			expected: Summary{Mean: 7, Max: 7, Min: 7},
		},
		"sample scenario": {
			text:     "3,5,7,9,11,8,6,4",
			expected: Summary{Mean: 6.625, Max: 11, Min: 3},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			tb, err := series.ParseManual(td.text)
			require.Nil(t, err)

			s, err := Summarize(tb)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, s)
		})
	}
}

func TestSummarizeNilTable(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestSummarizeMeanBounded(t *testing.T) {
	tb, err := series.ParseManual("2.5,9.75,0.1,6,6,3.3")
	require.Nil(t, err)

	s, err := Summarize(tb)
	require.Nil(t, err)
	assert.LessOrEqual(t, s.Min, s.Mean)
	assert.LessOrEqual(t, s.Mean, s.Max)
}

func TestClassifySeverity(t *testing.T) {
	testData := map[string]struct {
		max      float64
		expected Severity
	}{
		"high":                 {max: 11, expected: SeverityHigh},
		"just above high":      {max: 10.01, expected: SeverityHigh},
		"exactly ten":          {max: 10, expected: SeverityModerate},
		"moderate":             {max: 8, expected: SeverityModerate},
		"exactly seven":        {max: 7, expected: SeverityLow},
		"low":                  {max: 3, expected: SeverityLow},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, ClassifySeverity(Summary{Max: td.max}))
		})
	}
}

func TestAdvice(t *testing.T) {
	assert.Contains(t, Advice(SeverityHigh), "sunscreen")
	assert.Contains(t, Advice(SeverityModerate), "hat")
	assert.Contains(t, Advice(SeverityLow), "outdoors")
}

func TestPivotByDate(t *testing.T) {
	day1 := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2023, 10, 2, 0, 0, 0, 0, time.UTC)

	testData := map[string]struct {
		tb       *series.Table
		expected []Bucket
	}{
		"empty": {
			tb:       &series.Table{},
			expected: []Bucket{},
		},
		"duplicate dates averaged": {
			tb: &series.Table{
				T: []time.Time{day2, day1, day2},
				V: []float64{4, 3, 8},
			},
			expected: []Bucket{
				{Date: day1, Mean: 3},
				{Date: day2, Mean: 6},
			},
		},
		"time portion discarded": {
			tb: &series.Table{
				T: []time.Time{
					day1.Add(9 * time.Hour),
					day1.Add(15 * time.Hour),
				},
				V: []float64{2, 4},
			},
			expected: []Bucket{
				{Date: day1, Mean: 3},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, PivotByDate(td.tb))
		})
	}
}

func TestPivotByDateAscending(t *testing.T) {
	tb, err := series.ParseManual("3,5,7,9,11,8,6,4")
	require.Nil(t, err)

	buckets := PivotByDate(tb)
	require.Len(t, buckets, 8)
	for i := 1; i < len(buckets); i++ {
		assert.True(t, buckets[i-1].Date.Before(buckets[i].Date))
	}
}

func TestAnnotateCalendar(t *testing.T) {
	buckets := []Bucket{
		{Date: time.Date(2023, 10, 6, 0, 0, 0, 0, time.UTC), Mean: 5}, // Friday
		{Date: time.Date(2023, 10, 7, 0, 0, 0, 0, time.UTC), Mean: 6}, // Saturday
		{Date: time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), Mean: 2},
	}

	annotated := AnnotateCalendar(buckets)
	assert.False(t, annotated[0].Weekend)
	assert.Empty(t, annotated[0].Holiday)
	assert.True(t, annotated[1].Weekend)
	assert.NotEmpty(t, annotated[2].Holiday)
}
