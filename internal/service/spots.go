// Package service exposes the typed data-access operations of the client:
// scenic-spot queries over the gateway and the account operations that feed
// the session store. Each operation fixes a verb and a URL template; none
// transforms the payload beyond decoding, none retries.
package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/zzhang736/tripmap/internal/gateway"
	"github.com/zzhang736/tripmap/internal/model"
)

// Server-side defaults applied when a caller passes a non-positive value.
const (
	DefaultNearbyRadius = 5000 // meters
	DefaultUpdatePages  = 3
)

// SpotService wraps the scenic-spot endpoints.
type SpotService struct {
	gw *gateway.Client
}

// NewSpotService constructs a SpotService over the given gateway.
func NewSpotService(gw *gateway.Client) *SpotService {
	return &SpotService{gw: gw}
}

// GetAll lists every spot.
func (s *SpotService) GetAll(ctx context.Context) ([]model.Spot, error) {
	var spots []model.Spot
	if err := s.gw.Get(ctx, "/scenic_spots/", nil, &spots); err != nil {
		return nil, err
	}
	normalize(spots)
	return spots, nil
}

// GetByID fetches one spot's detail.
func (s *SpotService) GetByID(ctx context.Context, id string) (model.Spot, error) {
	var spot model.Spot
	if err := s.gw.Get(ctx, "/scenic_spots/"+url.PathEscape(id)+"/", nil, &spot); err != nil {
		return model.Spot{}, err
	}
	spot.Normalize()
	return spot, nil
}

// GetCategories lists the distinct spot categories.
func (s *SpotService) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.gw.Get(ctx, "/scenic_spots/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Search queries spots by keyword and returns the matches as a GeoJSON
// collection. An empty query is passed through unchanged; the server decides
// its semantics.
func (s *SpotService) Search(ctx context.Context, query string) (model.FeatureCollection, error) {
	q := url.Values{}
	q.Set("search", query)
	var fc model.FeatureCollection
	if err := s.gw.Get(ctx, "/scenic_spots/geojson/", q, &fc); err != nil {
		return model.FeatureCollection{}, err
	}
	return fc, nil
}

// GetNearby lists spots within radius meters of (lat, lng). A non-positive
// radius means DefaultNearbyRadius.
func (s *SpotService) GetNearby(ctx context.Context, lat, lng float64, radius int) ([]model.Spot, error) {
	if radius <= 0 {
		radius = DefaultNearbyRadius
	}
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(radius))

	var spots []model.Spot
	if err := s.gw.Get(ctx, "/scenic_spots/nearby/", q, &spots); err != nil {
		return nil, err
	}
	normalize(spots)
	return spots, nil
}

// GetGeoJSON fetches the full spot set as a GeoJSON feature collection.
func (s *SpotService) GetGeoJSON(ctx context.Context) (model.FeatureCollection, error) {
	var fc model.FeatureCollection
	if err := s.gw.Get(ctx, "/scenic_spots/geojson/", nil, &fc); err != nil {
		return model.FeatureCollection{}, err
	}
	return fc, nil
}

// UpdateData triggers a server-side data refresh over pageCount source pages.
// A non-positive pageCount means DefaultUpdatePages.
func (s *SpotService) UpdateData(ctx context.Context, pageCount int) (model.UpdateResult, error) {
	if pageCount <= 0 {
		pageCount = DefaultUpdatePages
	}
	body := struct {
		PageCount int `json:"page_count"`
	}{PageCount: pageCount}

	var res model.UpdateResult
	if err := s.gw.Post(ctx, "/scenic_spots/update_data/", body, &res); err != nil {
		return model.UpdateResult{}, err
	}
	return res, nil
}

// Filter asks the server for the spots matching the given preferences.
func (s *SpotService) Filter(ctx context.Context, prefs model.RoutePreferences) ([]model.Spot, error) {
	var spots []model.Spot
	if err := s.gw.Post(ctx, "/scenic_spots/filter/", prefs, &spots); err != nil {
		return nil, err
	}
	normalize(spots)
	return spots, nil
}

func normalize(spots []model.Spot) {
	for i := range spots {
		spots[i].Normalize()
	}
}
