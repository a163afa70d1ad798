package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "uvboard",
	Short: "UV index and traffic dashboards",
	Long: `uvboard serves two small interactive dashboards: a UV index analyzer over
manually entered or uploaded readings, and a traffic dashboard with live
UV/weather conditions from the open-meteo forecast API.

Configuration is read from UVBOARD_* environment variables.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
