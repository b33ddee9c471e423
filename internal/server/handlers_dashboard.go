package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pzsluna26/Dashboard/internal/analytics"
	apperrors "github.com/pzsluna26/Dashboard/internal/errors"
	"github.com/pzsluna26/Dashboard/internal/metrics"
	"github.com/pzsluna26/Dashboard/internal/models"
)

// observeView wraps a view computation with its request counter and latency
// histogram.
func observeView(view string, fn func()) {
	metrics.ViewRequestsTotal.WithLabelValues(view).Inc()
	timer := prometheus.NewTimer(metrics.ViewComputeDuration.WithLabelValues(view))
	defer timer.ObserveDuration()
	fn()
}

// optionalWindow parses the start/end query params. Both absent means no
// window; exactly one is a validation error.
func optionalWindow(c echo.Context) (*analytics.Window, error) {
	start := c.QueryParam("start")
	end := c.QueryParam("end")

	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, apperrors.ValidationError("start and end must be provided together").
			WithContext("start", start).
			WithContext("end", end)
	}

	w, err := analytics.NewWindow(start, end)
	if err != nil {
		return nil, apperrors.ValidationError("invalid date range: dates must be YYYY-MM-DD with start <= end").
			WithContext("start", start).
			WithContext("end", end)
	}
	return &w, nil
}

// queryInt parses an optional positive integer query param; zero means unset.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, apperrors.ValidationError(name + " must be a positive integer").
			WithContext(name, raw)
	}
	return v, nil
}

// queryDomains parses the optional comma-separated domains filter.
func queryDomains(c echo.Context) []string {
	raw := c.QueryParam("domains")
	if raw == "" {
		return nil
	}
	var domains []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

func (s *Server) handleKpi(c echo.Context) error {
	if _, err := optionalWindow(c); err != nil {
		return err
	}

	ds := s.store.Get()
	w, err := analytics.ResolveWindow(c.QueryParam("start"), c.QueryParam("end"), ds)
	if errors.Is(err, analytics.ErrNoDailyData) {
		// Valid empty state: nothing to chart yet.
		return c.JSON(http.StatusOK, map[string]any{
			"hasData": false,
			"cards":   []analytics.CategoryKpi{},
		})
	}
	if err != nil {
		return apperrors.ValidationError(err.Error())
	}

	var out analytics.KpiSeries
	observeView("kpi", func() { out = analytics.BuildKpi(ds, w) })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleTopLaws(c echo.Context) error {
	w, err := optionalWindow(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	var out []analytics.RankedLaw
	observeView("top-laws", func() {
		out = analytics.TopLaws(s.store.Get(), w, queryDomains(c), limit)
	})
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleStanceArea(c echo.Context) error {
	w, err := optionalWindow(c)
	if err != nil {
		return err
	}

	var out analytics.StanceSeries
	observeView("stance-area", func() {
		out = analytics.BuildStanceSeries(s.store.Get(), w)
	})
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleNetworkGraph(c echo.Context) error {
	w, err := optionalWindow(c)
	if err != nil {
		return err
	}
	maxLaws, err := queryInt(c, "max-laws")
	if err != nil {
		return err
	}
	maxIncidents, err := queryInt(c, "max-incidents")
	if err != nil {
		return err
	}

	var out analytics.RelationGraph
	observeView("network-graph", func() {
		out = analytics.BuildGraph(s.store.Get(), w, maxLaws, maxIncidents)
	})
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleHeatmap(c echo.Context) error {
	w, err := optionalWindow(c)
	if err != nil {
		return err
	}

	var g models.Granularity
	switch period := c.QueryParam("period"); period {
	case "", "monthly":
		g = models.Monthly
	case "weekly":
		g = models.Weekly
	case "daily":
		g = models.Daily
	default:
		return apperrors.ValidationError("period must be daily, weekly, or monthly").
			WithContext("period", period)
	}

	var out analytics.HeatmapMatrix
	observeView("heatmap", func() {
		out = analytics.BuildHeatmap(s.store.Get(), w, g)
	})
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleTrend(c echo.Context) error {
	if _, err := optionalWindow(c); err != nil {
		return err
	}

	ds := s.store.Get()
	w, err := analytics.ResolveWindow(c.QueryParam("start"), c.QueryParam("end"), ds)
	if errors.Is(err, analytics.ErrNoDailyData) {
		return c.JSON(http.StatusOK, []analytics.TrendSeries{})
	}
	if err != nil {
		return apperrors.ValidationError(err.Error())
	}

	var out []analytics.TrendSeries
	observeView("trend", func() { out = analytics.BuildTrend(ds, w) })
	return c.JSON(http.StatusOK, out)
}
