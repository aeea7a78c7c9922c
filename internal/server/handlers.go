package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/huangsam/uatpulse/core"
	"github.com/huangsam/uatpulse/internal/contract"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "uatpulse",
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	m, err := core.GetDashboardResults(requestContext(r), s.requestConfig(r), s.mgr)
	if err != nil {
		s.writeComputeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	c, err := core.GetCountdownResults(requestContext(r), s.baseCfg, s.mgr)
	if err != nil {
		s.writeComputeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	series, err := core.GetSeriesResults(requestContext(r), s.baseCfg, s.mgr)
	if err != nil {
		s.writeComputeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	c, err := core.GetCalendarResults(requestContext(r), s.baseCfg, s.mgr)
	if err != nil {
		s.writeComputeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

// handleReport returns the daily status as markdown, offered for download under its default filename.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := core.GetReportResults(requestContext(r), s.requestConfig(r), s.mgr)
	if err != nil {
		s.writeComputeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(report.Markdown)); err != nil {
		s.log.Error().Err(err).Msg("Failed to write report response")
	}
}

// requestConfig applies the platform query parameter to a copy of the base config.
func (s *Server) requestConfig(r *http.Request) *contract.Config {
	return s.baseCfg.WithFeed("", r.URL.Query().Get("platform"))
}

// requestContext keeps API requests off the terminal and out of run history.
func requestContext(r *http.Request) context.Context {
	return core.WithSkipHistory(core.WithSuppressHeader(r.Context()))
}

// writeComputeError maps validation failures to 422 and feed failures to 502.
func (s *Server) writeComputeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if core.IsValidationError(err) {
		status = http.StatusUnprocessableEntity
	}
	s.log.Warn().Err(err).Int("status", status).Msg("Dashboard request failed")
	s.writeError(w, status, err.Error())
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
