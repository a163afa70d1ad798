package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/uvboard/uvboard"
)

var (
	analyzeFile string
	analyzeData string
	analyzeLow  float64
	analyzeHigh float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze readings from a CSV file or a comma-separated string",
	Long: `Run the full pipeline over the given readings and print the summary
statistics, severity classification, and per-day heatmap buckets.

Examples:
  # Analyze manually entered readings
  uvboard analyze --data "3,5,7,9,11,8,6,4"

  # Analyze an uploaded-style CSV with Date and UV Index columns
  uvboard analyze --file readings.csv --low 5 --high 9`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := loadDashboard(analyzeFile, analyzeData)
		if err != nil {
			return err
		}
		if err := applyRange(cmd, d, analyzeLow, analyzeHigh); err != nil {
			return err
		}
		return printAnalysis(os.Stdout, d)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "CSV file with Date and UV Index columns")
	analyzeCmd.Flags().StringVar(&analyzeData, "data", "", "comma-separated readings")
	analyzeCmd.Flags().Float64Var(&analyzeLow, "low", 0, "lower filter bound (inclusive)")
	analyzeCmd.Flags().Float64Var(&analyzeHigh, "high", 0, "upper filter bound (inclusive)")
	rootCmd.AddCommand(analyzeCmd)
}

func loadDashboard(file, data string) (*uvboard.Dashboard, error) {
	if file == "" && data == "" {
		return nil, errors.New("one of --file or --data is required")
	}

	d := uvboard.NewDashboard()
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := d.LoadCSV(f); err != nil {
			return nil, err
		}
		return d, nil
	}
	if err := d.LoadManual(data); err != nil {
		return nil, err
	}
	return d, nil
}

// applyRange narrows the filter bounds with whichever of --low/--high were
// set, keeping the data-derived bound for the other.
func applyRange(cmd *cobra.Command, d *uvboard.Dashboard, flagLow, flagHigh float64) error {
	low, high := d.Range()
	changed := false
	if cmd.Flags().Changed("low") {
		low = flagLow
		changed = true
	}
	if cmd.Flags().Changed("high") {
		high = flagHigh
		changed = true
	}
	if !changed {
		return nil
	}
	return d.SetRange(low, high)
}

func printAnalysis(w io.Writer, d *uvboard.Dashboard) error {
	stats, err := d.Stats()
	if err != nil {
		return err
	}
	sev, err := d.Severity()
	if err != nil {
		return err
	}
	advice, err := d.Advice()
	if err != nil {
		return err
	}
	pivot, err := d.Pivot()
	if err != nil {
		return err
	}
	filtered, err := d.Filtered()
	if err != nil {
		return err
	}
	low, high := d.Range()

	fmt.Fprintf(w, "Rows: %d  Mean: %.2f  Max: %g  Min: %g\n", d.Table().Len(), stats.Mean, stats.Max, stats.Min)
	fmt.Fprintf(w, "Severity: %s — %s\n", sev, advice)
	fmt.Fprintf(w, "Filter: [%g, %g] keeps %d of %d rows\n\n", low, high, filtered.Len(), d.Table().Len())

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Mean UV", "Weekend", "Holiday"})

	var rows [][]string
	for _, b := range pivot {
		weekend := ""
		if b.Weekend {
			weekend = "yes"
		}
		rows = append(rows, []string{
			b.Date.Format("2006-01-02"),
			strconv.FormatFloat(b.Mean, 'f', 2, 64),
			weekend,
			b.Holiday,
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
