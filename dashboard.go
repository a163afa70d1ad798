package uvboard

import (
	"errors"
	"io"
	"strings"

	"github.com/uvboard/uvboard/series"
	"github.com/uvboard/uvboard/uvstats"
)

var ErrNoData = errors.New("no data loaded")

// Dashboard holds the current table, its statistics, pivot buckets, and the
// active filter bounds. Each load or filter transition recomputes the derived
// values through the pure pipeline; a failed transition leaves the previous
// state untouched so a render cycle never shows partial output.
type Dashboard struct {
	table *series.Table
	stats uvstats.Summary
	pivot []uvstats.Bucket

	low  float64
	high float64
}

func NewDashboard() *Dashboard {
	return &Dashboard{}
}

// Loaded reports whether a table has been successfully loaded.
func (d *Dashboard) Loaded() bool {
	return d.table != nil
}

// LoadManual parses comma-separated readings and makes them the current table.
func (d *Dashboard) LoadManual(text string) error {
	tb, err := series.ParseManual(text)
	if err != nil {
		return err
	}
	return d.commit(tb)
}

// LoadCSV parses an uploaded delimited file and makes it the current table.
func (d *Dashboard) LoadCSV(r io.Reader) error {
	tb, err := series.ParseFile(r)
	if err != nil {
		return err
	}
	return d.commit(tb)
}

func (d *Dashboard) commit(tb *series.Table) error {
	stats, err := uvstats.Summarize(tb)
	if err != nil {
		return err
	}

	d.table = tb
	d.stats = stats
	d.pivot = uvstats.AnnotateCalendar(uvstats.PivotByDate(tb))
	d.low = stats.Min
	d.high = stats.Max
	return nil
}

// SetRange updates the filter bounds, clamped to the data's own min/max so a
// selection can never be emptier than a degenerate range or wider than the
// data.
func (d *Dashboard) SetRange(low, high float64) error {
	if !d.Loaded() {
		return ErrNoData
	}
	d.low = clamp(low, d.stats.Min, d.stats.Max)
	d.high = clamp(high, d.stats.Min, d.stats.Max)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Range returns the active filter bounds.
func (d *Dashboard) Range() (low, high float64) {
	return d.low, d.high
}

// Table returns the loaded table, or nil when no data is loaded.
func (d *Dashboard) Table() *series.Table {
	return d.table
}

// Stats returns the summary over the full loaded table.
func (d *Dashboard) Stats() (uvstats.Summary, error) {
	if !d.Loaded() {
		return uvstats.Summary{}, ErrNoData
	}
	return d.stats, nil
}

// Severity classifies the loaded table by its maximum reading.
func (d *Dashboard) Severity() (uvstats.Severity, error) {
	if !d.Loaded() {
		return "", ErrNoData
	}
	return uvstats.ClassifySeverity(d.stats), nil
}

// Advice returns the exposure recommendation for the current severity.
func (d *Dashboard) Advice() (string, error) {
	sev, err := d.Severity()
	if err != nil {
		return "", err
	}
	return uvstats.Advice(sev), nil
}

// Pivot returns the calendar-annotated heatmap buckets.
func (d *Dashboard) Pivot() ([]uvstats.Bucket, error) {
	if !d.Loaded() {
		return nil, ErrNoData
	}
	return d.pivot, nil
}

// Filtered returns the table restricted to the active range. The loaded table
// is never mutated.
func (d *Dashboard) Filtered() (*series.Table, error) {
	if !d.Loaded() {
		return nil, ErrNoData
	}
	return d.table.FilterRange(d.low, d.high), nil
}

// ExportCSV serializes the filtered table as delimited text.
func (d *Dashboard) ExportCSV() (string, error) {
	filtered, err := d.Filtered()
	if err != nil {
		return "", err
	}
	return filtered.ToDelimitedText(), nil
}

// ExportTo writes the filtered table as delimited text to w.
func (d *Dashboard) ExportTo(w io.Writer) error {
	out, err := d.ExportCSV()
	if err != nil {
		return err
	}
	_, err = io.Copy(w, strings.NewReader(out))
	return err
}
