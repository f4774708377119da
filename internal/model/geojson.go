package model

// GeoJSON shapes as produced by the backend's geojson endpoint. Only Point
// features are emitted; the client passes collections to the map widget
// without interpretation.

// FeatureCollection is a GeoJSON feature collection of spots.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one spot rendered as a GeoJSON Point feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties SpotProperties `json:"properties"`
}

// Geometry carries the point position as (lng, lat).
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// SpotProperties is the property bag the backend attaches to each feature.
type SpotProperties struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Address      string   `json:"address"`
	OpeningHours string   `json:"opening_hours"`
	TicketPrice  float64  `json:"ticket_price"`
	Images       []string `json:"images"`
}

// UpdateResult reports the outcome of a server-side data refresh.
type UpdateResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		UpdatedCount int `json:"updated_count"`
		PageCount    int `json:"page_count"`
	} `json:"data"`
}
