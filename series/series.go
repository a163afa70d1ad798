package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNonNumericToken = errors.New("non-numeric token")
	ErrNonFiniteValue  = errors.New("value is not finite")
	ErrMissingColumns  = errors.New("missing required columns")
	ErrBadDate         = errors.New("unparseable date")
)

const (
	// DateColumn and ValueColumn are the required upload header names and the
	// stable export column order.
	DateColumn  = "Date"
	ValueColumn = "UV Index"
)

// ManualAnchorDate is the first synthetic date assigned to manually entered
// readings. Each subsequent reading lands on the next calendar day.
var ManualAnchorDate = time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order when parsing the upload date column.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Point is a single dated reading.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Table represents an ordered series of dated readings. Extra holds any
// additional upload columns keyed by header name; they are preserved for
// display but ignored by all computations. A Table is never mutated after
// parsing, filtering produces a new Table.
type Table struct {
	T     []time.Time
	V     []float64
	Extra map[string][]string
}

// ParseManual converts comma-separated numeric text into a Table, assigning
// consecutive daily dates starting at ManualAnchorDate. Empty input yields an
// empty table.
func ParseManual(text string) (*Table, error) {
	return ParseManualFrom(text, ManualAnchorDate)
}

// ParseManualFrom is ParseManual with an explicit anchor date.
func ParseManualFrom(text string, anchor time.Time) (*Table, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &Table{}, nil
	}

	tokens := strings.Split(trimmed, ",")
	tb := &Table{
		T: make([]time.Time, 0, len(tokens)),
		V: make([]float64, 0, len(tokens)),
	}
	for i, token := range tokens {
		token = strings.TrimSpace(token)
		val, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("token %q at position %d, %w", token, i, ErrNonNumericToken)
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("token %q at position %d, %w", token, i, ErrNonFiniteValue)
		}
		tb.T = append(tb.T, anchor.AddDate(0, 0, i))
		tb.V = append(tb.V, val)
	}
	return tb, nil
}

// ParseFile parses delimited upload data. The header row must contain the
// Date and UV Index columns; extra columns are carried along in Extra.
func ParseFile(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file, %w", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read header, %w", err)
	}
	if err := EnsureColumns(header, DateColumn, ValueColumn); err != nil {
		return nil, err
	}

	dateIdx, valIdx := -1, -1
	extraIdx := make(map[string]int)
	for i, col := range header {
		switch col {
		case DateColumn:
			dateIdx = i
		case ValueColumn:
			valIdx = i
		default:
			extraIdx[col] = i
		}
	}

	tb := &Table{}
	if len(extraIdx) > 0 {
		tb.Extra = make(map[string][]string, len(extraIdx))
	}

	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d, %w", row, err)
		}

		date, err := parseDate(record[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d, %w", row, err)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(record[valIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d token %q, %w", row, record[valIdx], ErrNonNumericToken)
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("row %d token %q, %w", row, record[valIdx], ErrNonFiniteValue)
		}

		tb.T = append(tb.T, date)
		tb.V = append(tb.V, val)
		for col, i := range extraIdx {
			tb.Extra[col] = append(tb.Extra[col], record[i])
		}
	}
	return tb, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, s); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q, %w", s, ErrBadDate)
}

// EnsureColumns reports the missing set if any required column is absent from
// columns. Matching is case-sensitive.
func EnsureColumns(columns []string, required ...string) error {
	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col] = struct{}{}
	}

	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%s, %w", strings.Join(missing, ", "), ErrMissingColumns)
}

// FilterRange returns a new Table containing the rows whose value lies within
// [low, high]. Relative order is preserved. A degenerate range yields an empty
// table, never an error.
func (tb *Table) FilterRange(low, high float64) *Table {
	out := &Table{}
	if tb.Extra != nil {
		out.Extra = make(map[string][]string, len(tb.Extra))
	}
	for i, v := range tb.V {
		if v < low || v > high {
			continue
		}
		out.T = append(out.T, tb.T[i])
		out.V = append(out.V, v)
		for col, vals := range tb.Extra {
			out.Extra[col] = append(out.Extra[col], vals[i])
		}
	}
	return out
}

// ToDelimitedText serializes the table as comma-separated text with a
// "Date,UV Index" header. Extra columns are not exported. The output parses
// back through ParseFile to an equal table.
func (tb *Table) ToDelimitedText() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write([]string{DateColumn, ValueColumn})
	for i := range tb.V {
		_ = w.Write([]string{
			tb.T[i].Format("2006-01-02"),
			strconv.FormatFloat(tb.V[i], 'g', -1, 64),
		})
	}
	w.Flush()
	return sb.String()
}

func (tb *Table) Len() int {
	return len(tb.V)
}

// Points returns the table as dated readings.
func (tb *Table) Points() []Point {
	points := make([]Point, 0, len(tb.V))
	for i := range tb.V {
		points = append(points, Point{Date: tb.T[i], Value: tb.V[i]})
	}
	return points
}

func (tb *Table) Copy() *Table {
	tSeries := make([]time.Time, len(tb.T))
	vSeries := make([]float64, len(tb.V))
	copy(tSeries, tb.T)
	copy(vSeries, tb.V)
	out := &Table{
		T: tSeries,
		V: vSeries,
	}
	if tb.Extra != nil {
		out.Extra = make(map[string][]string, len(tb.Extra))
		for col, vals := range tb.Extra {
			cvals := make([]string, len(vals))
			copy(cvals, vals)
			out.Extra[col] = cvals
		}
	}
	return out
}
