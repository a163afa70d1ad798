package traffic

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrCongestionRange = errors.New("congestion level must be within [0, 100]")
	ErrNegativeCount   = errors.New("counts and speeds must be non-negative")
	ErrNoLocation      = errors.New("no location name")
)

// Record is one monitored location's traffic snapshot.
type Record struct {
	Location          string  `json:"location"`
	CongestionLevel   int     `json:"congestion_level"`
	AccidentsReported int     `json:"accidents_reported"`
	AvgSpeedKMH       float64 `json:"avg_speed_kmh"`
	VehicleCount      int     `json:"vehicle_count"`
}

func (r *Record) Valid() error {
	if r.Location == "" {
		return ErrNoLocation
	}
	if r.CongestionLevel < 0 || r.CongestionLevel > 100 {
		return fmt.Errorf("%s: %d, %w", r.Location, r.CongestionLevel, ErrCongestionRange)
	}
	if r.AccidentsReported < 0 || r.VehicleCount < 0 || r.AvgSpeedKMH < 0 {
		return fmt.Errorf("%s, %w", r.Location, ErrNegativeCount)
	}
	return nil
}

// SampleRecords returns the fixed demo snapshot. The returned slice is a
// fresh copy on every call so callers cannot disturb the sample.
func SampleRecords() []Record {
	return []Record{
		{Location: "Downtown", CongestionLevel: 75, AccidentsReported: 3, AvgSpeedKMH: 30, VehicleCount: 500},
		{Location: "Airport Road", CongestionLevel: 60, AccidentsReported: 2, AvgSpeedKMH: 45, VehicleCount: 300},
		{Location: "Highway 1", CongestionLevel: 85, AccidentsReported: 5, AvgSpeedKMH: 20, VehicleCount: 800},
		{Location: "Market Street", CongestionLevel: 50, AccidentsReported: 1, AvgSpeedKMH: 50, VehicleCount: 250},
	}
}

// DefaultAlertThreshold is the congestion percentage above which an alert is
// raised.
const DefaultAlertThreshold = 70

// AlertStatus reports whether any location exceeds the congestion threshold.
type AlertStatus struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// CongestionAlert raises an alert if any record's congestion level is strictly
// above threshold.
func CongestionAlert(records []Record, threshold int) AlertStatus {
	for _, r := range records {
		if r.CongestionLevel > threshold {
			return AlertStatus{
				Triggered: true,
				Message:   "High congestion detected! Consider alternate routes.",
			}
		}
	}
	return AlertStatus{
		Message: "Traffic is flowing smoothly.",
	}
}

// Coord is a latitude/longitude pair in degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DefaultCenter anchors the marker map on San Francisco.
var DefaultCenter = Coord{Lat: 37.7749, Lon: -122.4194}

// Marker is a map pin for one monitored location.
type Marker struct {
	Location string  `json:"location"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Color    string  `json:"color"`
	Popup    string  `json:"popup"`
}

// markers turn red once a location reports more accidents than this.
const accidentMarkerThreshold = 2

// Markers lays the records out around center, offset 0.01 degrees per row.
func Markers(records []Record, center Coord) []Marker {
	markers := make([]Marker, 0, len(records))
	for i, r := range records {
		color := "blue"
		if r.AccidentsReported > accidentMarkerThreshold {
			color = "red"
		}
		markers = append(markers, Marker{
			Location: r.Location,
			Lat:      center.Lat + float64(i)*0.01,
			Lon:      center.Lon + float64(i)*0.01,
			Color:    color,
			Popup: fmt.Sprintf(
				"%s\nAccidents: %d\nSpeed: %g km/h\nVehicles: %d",
				r.Location, r.AccidentsReported, r.AvgSpeedKMH, r.VehicleCount,
			),
		})
	}
	return markers
}

// FeedEntry is one row of the live traffic feed.
type FeedEntry struct {
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// LiveFeed produces the current feed row. A nil nowFunc uses the wall clock.
func LiveFeed(nowFunc func() time.Time) FeedEntry {
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return FeedEntry{
		Timestamp: nowFunc().Format("15:04:05"),
		Status:    "Moderate Traffic",
	}
}
