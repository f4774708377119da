package main

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/zzhang736/tripmap/internal/model"
)

// server holds the seeded dataset and registered accounts.
type server struct {
	log   *zap.Logger
	spots []spotRecord

	mu       sync.Mutex
	accounts map[string]string // username -> password
}

func newServer(log *zap.Logger) *server {
	return &server{
		log:      log,
		spots:    seedSpots(),
		accounts: map[string]string{"demo": "demo123"},
	}
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
			zap.Duration("dur", time.Since(start)),
		)
	})
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	out := make([]model.Spot, 0, len(s.spots))
	for _, rec := range s.spots {
		if search == "" || rec.matches(search) {
			out = append(out, rec.Spot)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for _, rec := range s.spots {
		if rec.ID == id {
			writeJSON(w, http.StatusOK, rec.Spot)
			return
		}
	}
	writeError(w, http.StatusNotFound, "spot not found")
}

func (s *server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	seen := map[string]bool{}
	var out []string
	for _, rec := range s.spots {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			out = append(out, rec.Category)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleNearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("lat") == "" || q.Get("lng") == "" {
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(w, http.StatusBadRequest, "invalid lat/lng")
		return
	}
	radius := 5000.0
	if v := q.Get("radius"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			radius = f
		}
	}

	out := make([]model.Spot, 0)
	for _, rec := range s.spots {
		if haversine(lat, lng, rec.Latitude, rec.Longitude) <= radius {
			out = append(out, rec.Spot)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search, category := q.Get("search"), q.Get("category")

	fc := model.FeatureCollection{Type: "FeatureCollection", Features: []model.Feature{}}
	for _, rec := range s.spots {
		if search != "" && !rec.matches(search) {
			continue
		}
		if category != "" && rec.Category != category {
			continue
		}
		fc.Features = append(fc.Features, model.Feature{
			Type: "Feature",
			Geometry: model.Geometry{
				Type:        "Point",
				Coordinates: [2]float64{rec.Longitude, rec.Latitude},
			},
			Properties: model.SpotProperties{
				ID:           rec.ID,
				Name:         rec.Name,
				Description:  rec.Description,
				Category:     rec.Category,
				Address:      rec.Address,
				OpeningHours: rec.OpenTime,
				TicketPrice:  rec.TicketPrice,
				Images:       rec.Images,
			},
		})
	}
	writeJSON(w, http.StatusOK, fc)
}

func (s *server) handleUpdateData(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PageCount int `json:"page_count"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.PageCount <= 0 {
		body.PageCount = 3
	}

	var res model.UpdateResult
	res.Status = "success"
	res.Message = "refresh complete"
	res.Data.UpdatedCount = len(s.spots)
	res.Data.PageCount = body.PageCount
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var prefs model.RoutePreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid preferences payload")
		return
	}

	// Mirrors the production filter: category intersection, then a budget
	// cap on ticket price, at most 15 results for route planning.
	maxPrice := math.Inf(1)
	switch prefs.Budget {
	case model.BudgetLow:
		maxPrice = 100
	case model.BudgetMedium:
		maxPrice = 200
	}

	out := make([]model.Spot, 0)
	for _, rec := range s.spots {
		if len(prefs.Preferences) > 0 && !contains(prefs.Preferences, rec.Category) {
			continue
		}
		if rec.TicketPrice > maxPrice {
			continue
		}
		out = append(out, rec.Spot)
		if len(out) == 15 {
			break
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	if len(body.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[body.Username]; exists {
		writeError(w, http.StatusBadRequest, "username already registered")
		return
	}
	s.accounts[body.Username] = body.Password

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": map[string]string{"username": body.Username, "email": body.Email},
	})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid login payload")
		return
	}

	s.mu.Lock()
	pass, ok := s.accounts[body.Username]
	s.mu.Unlock()
	if !ok || pass != body.Password {
		writeError(w, http.StatusBadRequest, "invalid username or password")
		return
	}

	token, _ := uuid.NewV4()
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "login successful",
		"token":   token.String(),
	})
}

// ---- helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

const earthRadiusM = 6371000

// haversine returns the great-circle distance in meters.
func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
