package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/uvboard/uvboard"
	"github.com/uvboard/uvboard/meteo"
	"github.com/uvboard/uvboard/series"
	"github.com/uvboard/uvboard/traffic"
	"github.com/uvboard/uvboard/uvstats"
)

type manualRequest struct {
	Data string `json:"data"`
}

type loadResponse struct {
	Rows     int              `json:"rows"`
	Stats    uvstats.Summary  `json:"stats"`
	Severity uvstats.Severity `json:"severity"`
	Advice   string           `json:"advice"`
}

type statsResponse struct {
	Stats    uvstats.Summary  `json:"stats"`
	Severity uvstats.Severity `json:"severity"`
	Advice   string           `json:"advice"`
	Low      float64          `json:"low"`
	High     float64          `json:"high"`
}

func (s *Server) handleUVPage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !s.dashboard.Loaded() {
		w.Write([]byte("<html><body><h1>UV Index Analyzer</h1><p>No data loaded. POST readings to /api/uv/manual or upload a CSV to /api/uv/upload.</p></body></html>"))
		return
	}
	if err := s.dashboard.RenderUVPage(w); err != nil {
		s.logger.Error("render uv page failed", "error", err)
	}
}

func (s *Server) handleTrafficPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := uvboard.RenderTrafficPage(w, traffic.SampleRecords(), traffic.DefaultCenter); err != nil {
		s.logger.Error("render traffic page failed", "error", err)
	}
}

func (s *Server) handleManual(w http.ResponseWriter, r *http.Request) {
	var req manualRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		s.renderErr(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dashboard.LoadManual(req.Data); err != nil {
		s.metrics.ParseErrors.Inc()
		s.renderErr(w, r, err)
		return
	}
	s.metrics.ManualLoads.Inc()
	s.renderLoad(w, r)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		s.renderErr(w, r, err)
		return
	}
	defer file.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dashboard.LoadCSV(file); err != nil {
		s.metrics.ParseErrors.Inc()
		s.renderErr(w, r, err)
		return
	}
	s.metrics.Uploads.Inc()
	s.renderLoad(w, r)
}

// renderLoad reports the freshly loaded table. Callers hold s.mu.
func (s *Server) renderLoad(w http.ResponseWriter, r *http.Request) {
	stats, _ := s.dashboard.Stats()
	sev, _ := s.dashboard.Severity()
	advice, _ := s.dashboard.Advice()
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, loadResponse{
		Rows:     s.dashboard.Table().Len(),
		Stats:    stats,
		Severity: sev,
		Advice:   advice,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.dashboard.Stats()
	if err != nil {
		s.renderErr(w, r, err)
		return
	}
	sev, _ := s.dashboard.Severity()
	advice, _ := s.dashboard.Advice()
	low, high := s.dashboard.Range()
	render.JSON(w, r, statsResponse{
		Stats:    stats,
		Severity: sev,
		Advice:   advice,
		Low:      low,
		High:     high,
	})
}

func (s *Server) handlePivot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pivot, err := s.dashboard.Pivot()
	if err != nil {
		s.renderErr(w, r, err)
		return
	}
	render.JSON(w, r, pivot)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	low, high := s.dashboard.Range()
	var err error
	if v := r.URL.Query().Get("low"); v != "" {
		if low, err = strconv.ParseFloat(v, 64); err != nil {
			s.renderErr(w, r, err)
			return
		}
	}
	if v := r.URL.Query().Get("high"); v != "" {
		if high, err = strconv.ParseFloat(v, 64); err != nil {
			s.renderErr(w, r, err)
			return
		}
	}

	if err := s.dashboard.SetRange(low, high); err != nil {
		s.renderErr(w, r, err)
		return
	}
	filtered, err := s.dashboard.Filtered()
	if err != nil {
		s.renderErr(w, r, err)
		return
	}
	render.JSON(w, r, filtered.Points())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.dashboard.ExportCSV()
	if err != nil {
		s.renderErr(w, r, err)
		return
	}
	s.metrics.Exports.Inc()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="processed_uv_data.csv"`)
	w.Write([]byte(out))
}

func (s *Server) handleTrafficRecords(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, traffic.SampleRecords())
}

func (s *Server) handleAlert(w http.ResponseWriter, r *http.Request) {
	threshold := s.alertThreshold
	if v := r.URL.Query().Get("threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			s.renderErr(w, r, errors.New("threshold must be an integer within [0, 100]"))
			return
		}
		threshold = n
	}
	render.JSON(w, r, traffic.CongestionAlert(traffic.SampleRecords(), threshold))
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, traffic.Markers(traffic.SampleRecords(), traffic.DefaultCenter))
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, traffic.LiveFeed(s.nowFunc))
}

func (s *Server) handleUVIndex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reading, err := s.meteoClient.CurrentUV(r.Context())
	s.metrics.FetchDuration.WithLabelValues("uv_index").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.FetchRequests.WithLabelValues("uv_index", "error").Inc()
		s.logger.Warn("uv index fetch failed", "error", err)
		s.renderErr(w, r, err)
		return
	}
	s.metrics.FetchRequests.WithLabelValues("uv_index", "success").Inc()
	render.JSON(w, r, reading)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	weather, err := s.meteoClient.CurrentWeather(r.Context())
	s.metrics.FetchDuration.WithLabelValues("weather").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.FetchRequests.WithLabelValues("weather", "error").Inc()
		s.logger.Warn("weather fetch failed", "error", err)
		s.renderErr(w, r, err)
		return
	}
	s.metrics.FetchRequests.WithLabelValues("weather", "success").Inc()
	render.JSON(w, r, weather)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "healthy"})
}

// renderErr maps pipeline and fetch errors to HTTP statuses and renders a
// terminal error payload for the cycle.
func (s *Server) renderErr(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest

	var fetchErr *meteo.FetchError
	switch {
	case errors.As(err, &fetchErr), errors.Is(err, meteo.ErrMalformedResponse):
		status = http.StatusBadGateway
	case errors.Is(err, uvboard.ErrNoData):
		status = http.StatusConflict
	case errors.Is(err, series.ErrMissingColumns):
		status = http.StatusUnprocessableEntity
	}

	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
