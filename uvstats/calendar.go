package uvstats

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// AnnotateCalendar marks each bucket that falls on a weekend or on an observed
// US holiday. Buckets are annotated in place and returned for chaining. Rest
// days carry the longest sun exposure, so the heatmap calls them out.
func AnnotateCalendar(buckets []Bucket) []Bucket {
	return AnnotateHolidays(buckets, us.Holidays)
}

// AnnotateHolidays is AnnotateCalendar with an explicit holiday set.
func AnnotateHolidays(buckets []Bucket, holidays []*cal.Holiday) []Bucket {
	for i := range buckets {
		switch buckets[i].Date.Weekday() {
		case time.Saturday, time.Sunday:
			buckets[i].Weekend = true
		}
		buckets[i].Holiday = holidayName(buckets[i].Date, holidays)
	}
	return buckets
}

func holidayName(day time.Time, holidays []*cal.Holiday) string {
	for _, hol := range holidays {
		_, observed := hol.Calc(day.Year())
		if observed.IsZero() {
			continue
		}
		y, m, d := observed.Date()
		if day.Equal(time.Date(y, m, d, 0, 0, 0, 0, day.Location())) {
			return hol.Name
		}
	}
	return ""
}
