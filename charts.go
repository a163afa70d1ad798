package uvboard

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/uvboard/uvboard/series"
	"github.com/uvboard/uvboard/traffic"
	"github.com/uvboard/uvboard/uvstats"
)

// LineUV generates an echart line chart of readings over time.
func LineUV(title string, tb *series.Table) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([]opts.LineData, 0, tb.Len())
	for _, v := range tb.V {
		lineData = append(lineData, opts.LineData{Value: v})
	}

	line.SetXAxis(fmtDates(tb.T)).
		AddSeries(series.ValueColumn, lineData)
	return line
}

// BarUV generates an echart bar chart of readings over time.
func BarUV(title string, tb *series.Table) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	barData := make([]opts.BarData, 0, tb.Len())
	for _, v := range tb.V {
		barData = append(barData, opts.BarData{Value: v})
	}

	bar.SetXAxis(fmtDates(tb.T)).
		AddSeries(series.ValueColumn, barData)
	return bar
}

// HeatmapUV generates a single-row heatmap of the date-bucketed means.
// Weekend and holiday buckets carry their annotation as the cell name.
func HeatmapUV(title string, buckets []uvstats.Bucket) *charts.HeatMap {
	hm := charts.NewHeatMap()

	var lo, hi float64
	xLabels := make([]string, 0, len(buckets))
	hmData := make([]opts.HeatMapData, 0, len(buckets))
	for i, b := range buckets {
		if i == 0 || b.Mean < lo {
			lo = b.Mean
		}
		if i == 0 || b.Mean > hi {
			hi = b.Mean
		}
		xLabels = append(xLabels, b.Date.Format("2006-01-02"))

		name := ""
		if b.Holiday != "" {
			name = b.Holiday
		} else if b.Weekend {
			name = "weekend"
		}
		hmData = append(hmData, opts.HeatMapData{
			Name:  name,
			Value: [3]interface{}{i, 0, b.Mean},
		})
	}

	hm.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Type: "category",
				Data: xLabels,
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Type: "category",
				Data: []string{series.ValueColumn},
			},
		),
		charts.WithVisualMapOpts(
			opts.VisualMap{
				Min: float32(lo),
				Max: float32(hi),
			},
		),
	)

	hm.AddSeries(series.ValueColumn, hmData)
	return hm
}

// BarCongestion generates a bar chart of congestion levels by location.
func BarCongestion(records []traffic.Record) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Traffic Congestion Levels",
			},
		),
	)

	locations := make([]string, 0, len(records))
	barData := make([]opts.BarData, 0, len(records))
	for _, r := range records {
		locations = append(locations, r.Location)
		barData = append(barData, opts.BarData{Value: r.CongestionLevel})
	}

	bar.SetXAxis(locations).
		AddSeries("Congestion (%)", barData)
	return bar
}

// LineSpeed generates a line chart of average speeds by location.
func LineSpeed(records []traffic.Record) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Average Speed of Vehicles",
			},
		),
	)

	locations := make([]string, 0, len(records))
	lineData := make([]opts.LineData, 0, len(records))
	for _, r := range records {
		locations = append(locations, r.Location)
		lineData = append(lineData, opts.LineData{Value: r.AvgSpeedKMH})
	}

	line.SetXAxis(locations).
		AddSeries("Speed (km/h)", lineData)
	return line
}

// PieVehicles generates a pie chart of vehicle counts by location.
func PieVehicles(records []traffic.Record) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Vehicle Distribution",
			},
		),
	)

	pieData := make([]opts.PieData, 0, len(records))
	for _, r := range records {
		pieData = append(pieData, opts.PieData{
			Name:  r.Location,
			Value: r.VehicleCount,
		})
	}

	pie.AddSeries("Vehicle Count", pieData)
	return pie
}

// ScatterMarkers lays the map markers out on a lon/lat scatter, one series
// per marker color.
func ScatterMarkers(markers []traffic.Marker) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Accident-Prone Areas",
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Type: "value",
				Name: "Longitude",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Type: "value",
				Name: "Latitude",
			},
		),
	)

	byColor := make(map[string][]opts.ScatterData)
	for _, m := range markers {
		byColor[m.Color] = append(byColor[m.Color], opts.ScatterData{
			Name:  m.Location,
			Value: []interface{}{m.Lon, m.Lat},
		})
	}
	for color, data := range byColor {
		scatter.AddSeries(
			color,
			data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
		)
	}
	return scatter
}

// RenderUVPage assembles the UV dashboard charts over the filtered table into
// a single html page.
func (d *Dashboard) RenderUVPage(w io.Writer) error {
	filtered, err := d.Filtered()
	if err != nil {
		return err
	}
	pivot, err := d.Pivot()
	if err != nil {
		return err
	}
	advice, err := d.Advice()
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = "UV Index Analyzer"
	page.AddCharts(
		LineUV(fmt.Sprintf("UV Index Over Time — %s", advice), filtered),
		BarUV("UV Index by Day", filtered),
		HeatmapUV("UV Index Heatmap", pivot),
	)
	return page.Render(w)
}

// RenderTrafficPage assembles the traffic dashboard charts into a single html
// page.
func RenderTrafficPage(w io.Writer, records []traffic.Record, center traffic.Coord) error {
	page := components.NewPage()
	page.PageTitle = "TrafficSense Dashboard"
	page.AddCharts(
		BarCongestion(records),
		LineSpeed(records),
		PieVehicles(records),
		ScatterMarkers(traffic.Markers(records, center)),
	)
	return page.Render(w)
}

func fmtDates(t []time.Time) []string {
	out := make([]string, 0, len(t))
	for _, ts := range t {
		out = append(out, ts.Format("2006-01-02"))
	}
	return out
}
