package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	exportFile string
	exportData string
	exportLow  float64
	exportHigh float64
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered readings as CSV",
	Long: `Run the pipeline over the given readings, apply the filter bounds, and
write the result as Date,UV Index delimited text.

Examples:
  uvboard export --data "3,5,7,9,11,8,6,4" --low 5 --high 9
  uvboard export --file readings.csv --out processed_uv_data.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := loadDashboard(exportFile, exportData)
		if err != nil {
			return err
		}
		if err := applyRange(cmd, d, exportLow, exportHigh); err != nil {
			return err
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return d.ExportTo(out)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFile, "file", "", "CSV file with Date and UV Index columns")
	exportCmd.Flags().StringVar(&exportData, "data", "", "comma-separated readings")
	exportCmd.Flags().Float64Var(&exportLow, "low", 0, "lower filter bound (inclusive)")
	exportCmd.Flags().Float64Var(&exportHigh, "high", 0, "upper filter bound (inclusive)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
