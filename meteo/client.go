package meteo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

var ErrMalformedResponse = errors.New("malformed forecast response")

const (
	DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"
	DefaultTimeout = 10 * time.Second

	// San Francisco, the dashboard's fixed vantage point.
	DefaultLatitude  = 37.7749
	DefaultLongitude = -122.4194
)

// FetchError reports a failed forecast fetch. Status is the HTTP status code
// for non-200 responses and zero when the body could not be interpreted, in
// which case the wrapped error matches ErrMalformedResponse.
type FetchError struct {
	Status int
	err    error
}

func (e *FetchError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("forecast fetch: %v", e.err)
	}
	return fmt.Sprintf("forecast fetch: unexpected status %d", e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.err
}

// Reading is a single scalar extracted from a forecast response.
type Reading struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
}

// Weather is the current temperature and WMO weather code pair.
type Weather struct {
	TemperatureC float64 `json:"temperature_c"`
	WeatherCode  int     `json:"weather_code"`
}

// Client fetches current conditions from the open-meteo forecast API. One
// blocking request per call, no retries; the only resilience is the client
// timeout.
type Client struct {
	baseURL    string
	lat        float64
	lon        float64
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a forecast client. Zero-valued arguments fall back to the
// package defaults.
func NewClient(baseURL string, lat, lon float64, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if lat == 0 && lon == 0 {
		lat, lon = DefaultLatitude, DefaultLongitude
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		lat:     lat,
		lon:     lon,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With(slog.String("component", "meteo")),
	}
}

// CurrentUV fetches the current UV index.
func (c *Client) CurrentUV(ctx context.Context) (Reading, error) {
	val, err := c.FetchScalar(ctx, "uv_index", "current", "uv_index")
	if err != nil {
		return Reading{}, err
	}
	return Reading{Field: "uv_index", Value: val}, nil
}

// CurrentWeather fetches the current temperature and weather code in a single
// request.
func (c *Client) CurrentWeather(ctx context.Context) (Weather, error) {
	body, err := c.doRequest(ctx, "temperature_2m,weathercode")
	if err != nil {
		return Weather{}, err
	}

	temp, err := extractNumber(body, "current", "temperature_2m")
	if err != nil {
		return Weather{}, err
	}
	code, err := extractNumber(body, "current", "weathercode")
	if err != nil {
		return Weather{}, err
	}
	return Weather{TemperatureC: temp, WeatherCode: int(code)}, nil
}

// FetchScalar issues one GET for the given current-conditions field and
// extracts a numeric value at the given path in the response body. Any status
// other than 200 fails with a FetchError carrying the status code.
func (c *Client) FetchScalar(ctx context.Context, current string, path ...string) (float64, error) {
	body, err := c.doRequest(ctx, current)
	if err != nil {
		return 0, err
	}
	return extractNumber(body, path...)
}

func (c *Client) doRequest(ctx context.Context, current string) (map[string]json.RawMessage, error) {
	params := url.Values{
		"latitude":  {strconv.FormatFloat(c.lat, 'f', 4, 64)},
		"longitude": {strconv.FormatFloat(c.lon, 'f', 4, 64)},
		"current":   {current},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request, %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("forecast fetch failed", "status", resp.StatusCode, "current", current)
		return nil, &FetchError{Status: resp.StatusCode}
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &FetchError{err: fmt.Errorf("decode body: %v, %w", err, ErrMalformedResponse)}
	}
	return body, nil
}

func extractNumber(body map[string]json.RawMessage, path ...string) (float64, error) {
	if len(path) == 0 {
		return 0, &FetchError{err: fmt.Errorf("empty field path, %w", ErrMalformedResponse)}
	}

	for i := 0; i < len(path)-1; i++ {
		raw, ok := body[path[i]]
		if !ok {
			return 0, &FetchError{err: fmt.Errorf("missing field %q, %w", path[i], ErrMalformedResponse)}
		}
		var next map[string]json.RawMessage
		if err := json.Unmarshal(raw, &next); err != nil {
			return 0, &FetchError{err: fmt.Errorf("field %q is not an object, %w", path[i], ErrMalformedResponse)}
		}
		body = next
	}

	leaf := path[len(path)-1]
	raw, ok := body[leaf]
	if !ok {
		return 0, &FetchError{err: fmt.Errorf("missing field %q, %w", leaf, ErrMalformedResponse)}
	}
	var val float64
	if err := json.Unmarshal(raw, &val); err != nil {
		return 0, &FetchError{err: fmt.Errorf("field %q is not a number, %w", leaf, ErrMalformedResponse)}
	}
	return val, nil
}
