package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"skyline/charts"
	"skyline/models"
)

// selection returns the requested cities. Without any city parameter the
// configured defaults apply, unless the form was submitted, in which case
// the selection is empty.
func (s *Server) selection(q url.Values) []string {
	raw, ok := q["city"]
	if !ok {
		if q.Has("submitted") {
			return nil
		}
		return s.dash.DefaultCities()
	}
	var cities []string
	for _, c := range raw {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	return cities
}

// query resolves the request parameters into a clamped Query.
func (s *Server) query(r *http.Request) (models.Query, error) {
	q := r.URL.Query()
	cities := s.selection(q)

	var minHeight *float64
	if v := q.Get("min_height"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
			return models.Query{}, fmt.Errorf("invalid min_height %q", v)
		}
		minHeight = &h
	}
	var minYear *int
	if v := q.Get("min_year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return models.Query{}, fmt.Errorf("invalid min_year %q", v)
		}
		minYear = &y
	}
	return s.dash.Resolve(cities, minHeight, minYear), nil
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"cities":   s.dash.Cities(),
		"defaults": s.dash.DefaultCities(),
	})
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dash.Bounds(s.selection(r.URL.Query())))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q, err := s.query(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	v := s.dash.Build(q)
	s.writeJSON(w, http.StatusOK, struct {
		*models.DashboardView
		Charts charts.Set `json:"charts"`
	}{v, charts.FromView(v)})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	kind, ok := strings.CutSuffix(r.PathValue("file"), ".svg")
	if !ok {
		http.NotFound(w, r)
		return
	}
	q, err := s.query(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	err = charts.Render(&buf, kind, charts.FromView(s.dash.Build(q)))
	if errors.Is(err, charts.ErrUnknownKind) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("[server] Render %s chart: %v", kind, err)
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("[server] Encode response: %v", err)
	}
}
