package web

import (
	"net/http"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/propdesk/internal/clients/crm"
	"github.com/bobmcallan/propdesk/internal/models"
)

// handleDashboard renders the overview: summary cards from the stats
// endpoint plus the properties-by-area chart. A stats failure renders the
// page with an error flash rather than failing the whole view.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	vd := s.newViewData(r, "dashboard.title")

	stats, err := s.app.CRM.Stats(r.Context())
	if err != nil {
		if crm.IsUnauthorized(err) {
			s.destroySession(w, r)
			return
		}
		s.logger.Error().Err(err).Msg("Stats fetch failed")
		vd.Flash = &flashView{Message: vd.T("dashboard.error_fetching"), IsError: true}
		stats = &models.Stats{}
	}

	vd.Data = stats
	s.render(w, r, http.StatusOK, "dashboard", vd)
}

// handleDashboardChart renders the properties-by-area bar chart as PNG.
func (s *Server) handleDashboardChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := s.app.CRM.Stats(r.Context())
	if err != nil {
		if crm.IsUnauthorized(err) {
			s.destroySession(w, r)
			return
		}
		s.logger.Error().Err(err).Msg("Stats fetch failed")
		http.Error(w, "Stats unavailable", http.StatusBadGateway)
		return
	}
	if len(stats.PropertiesByArea) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	bars := make([]chart.Value, 0, len(stats.PropertiesByArea))
	for _, bucket := range stats.PropertiesByArea {
		label := bucket.Area
		if label == "" {
			label = "N/A"
		}
		bars = append(bars, chart.Value{
			Label: label,
			Value: float64(bucket.Count),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"),
				StrokeColor: drawing.ColorFromHex("2563eb"),
			},
		})
	}

	graph := chart.BarChart{
		Width:    900,
		Height:   400,
		BarWidth: 50,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := graph.Render(chart.PNG, w); err != nil {
		s.logger.Error().Err(err).Msg("Chart render failed")
	}
}
