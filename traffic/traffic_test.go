package traffic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleRecordsValid(t *testing.T) {
	records := SampleRecords()
	require.Len(t, records, 4)
	for _, r := range records {
		assert.Nil(t, r.Valid())
	}
}

func TestSampleRecordsIsolated(t *testing.T) {
	records := SampleRecords()
	records[0].CongestionLevel = 0
	assert.Equal(t, 75, SampleRecords()[0].CongestionLevel)
}

func TestRecordValid(t *testing.T) {
	testData := map[string]struct {
		record Record
		err    error
	}{
		"valid": {
			record: Record{Location: "Downtown", CongestionLevel: 50, AvgSpeedKMH: 30, VehicleCount: 10},
		},
		"no location": {
			record: Record{CongestionLevel: 50},
			err:    ErrNoLocation,
		},
		"congestion above range": {
			record: Record{Location: "Downtown", CongestionLevel: 101},
			err:    ErrCongestionRange,
		},
		"negative vehicle count": {
			record: Record{Location: "Downtown", VehicleCount: -1},
			err:    ErrNegativeCount,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := td.record.Valid()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestCongestionAlert(t *testing.T) {
	testData := map[string]struct {
		value     int
		triggered bool
	}{
		"default threshold trips on sample": {value: DefaultAlertThreshold, triggered: true},
		"max threshold never trips":         {value: 100, triggered: false},
		"equal is not above":                {value: 85, triggered: false},
	}

	records := SampleRecords()
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			status := CongestionAlert(records, td.value)
			assert.Equal(t, td.triggered, status.Triggered)
			if td.triggered {
				assert.Contains(t, status.Message, "High congestion")
			} else {
				assert.Contains(t, status.Message, "flowing smoothly")
			}
		})
	}
}

func TestMarkers(t *testing.T) {
	markers := Markers(SampleRecords(), DefaultCenter)
	require.Len(t, markers, 4)

	// offsets step 0.01 degrees per row from the center
	assert.InDelta(t, DefaultCenter.Lat, markers[0].Lat, 1e-9)
	assert.InDelta(t, DefaultCenter.Lon+0.03, markers[3].Lon, 1e-9)

	// red markers only where accidents exceed the threshold
	assert.Equal(t, "red", markers[0].Color)   // Downtown, 3 accidents
	assert.Equal(t, "blue", markers[1].Color)  // Airport Road, 2 accidents
	assert.Equal(t, "red", markers[2].Color)   // Highway 1, 5 accidents
	assert.Equal(t, "blue", markers[3].Color)  // Market Street, 1 accident

	assert.Contains(t, markers[0].Popup, "Downtown")
	assert.Contains(t, markers[0].Popup, "Accidents: 3")
}

func TestLiveFeed(t *testing.T) {
	nowFunc := func() time.Time {
		return time.Date(2023, 10, 1, 13, 37, 42, 0, time.UTC)
	}
	entry := LiveFeed(nowFunc)
	assert.Equal(t, FeedEntry{Timestamp: "13:37:42", Status: "Moderate Traffic"}, entry)
}

func TestLiveFeedDefaultClock(t *testing.T) {
	entry := LiveFeed(nil)
	assert.NotEmpty(t, entry.Timestamp)
	assert.Equal(t, "Moderate Traffic", entry.Status)
}
