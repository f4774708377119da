// Package model defines the entity shapes exchanged with the tourism backend
// and handed to the map renderer. All types are plain values; the client never
// mutates them beyond constructing request payloads.
package model

// User identifies the logged-in account. Serialized as JSON into durable
// storage whenever set.
type User struct {
	Username string `json:"username"`
}

// Spot is a single point of interest. Longitude/Latitude and Coordinates
// carry the same position twice (the map widget consumes the pair, the list
// views consume the discrete fields); Normalize keeps them consistent after
// decoding.
type Spot struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	ShortDesc     string     `json:"shortDesc,omitempty"`
	Longitude     float64    `json:"longitude"`
	Latitude      float64    `json:"latitude"`
	Coordinates   [2]float64 `json:"coordinates"` // (lng, lat)
	Address       string     `json:"address"`
	OpenTime      string     `json:"openTime"`
	Price         string     `json:"price"`
	TicketPrice   float64    `json:"ticket_price"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Tags          []string   `json:"tags"`
	SuggestedTime string     `json:"suggestedTime"`
}

// Normalize restores the Coordinates == (Longitude, Latitude) invariant.
// Backends differ in which representation they populate; whichever side is
// zero-valued is filled from the other, with the discrete fields winning when
// both are set.
func (s *Spot) Normalize() {
	if s.Longitude == 0 && s.Latitude == 0 && (s.Coordinates[0] != 0 || s.Coordinates[1] != 0) {
		s.Longitude = s.Coordinates[0]
		s.Latitude = s.Coordinates[1]
		return
	}
	s.Coordinates = [2]float64{s.Longitude, s.Latitude}
}

// RouteStep is one leg of turn-by-turn navigation. Polyline is encoded path
// geometry, opaque to this client.
type RouteStep struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
	Polyline    string `json:"polyline"`
}

// Difficulty grades a composed route.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
)

// Route is a composed itinerary. Spot order is itinerary order.
type Route struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Spots          []Spot      `json:"spots"`
	Duration       string      `json:"duration"`
	EstimatedCost  float64     `json:"estimatedCost"`
	Transportation string      `json:"transportation"`
	Distance       string      `json:"distance"`
	Difficulty     Difficulty  `json:"difficulty"`
	Path           []RouteStep `json:"path,omitempty"`
}

// Budget and Transportation enumerate the filter request vocabulary.
type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

type Transportation string

const (
	TransportPublic Transportation = "public"
	TransportCar    Transportation = "car"
	TransportWalk   Transportation = "walk"
)

// RoutePreferences is the payload of the filter operation. Preferences order
// is significant (user-ranked category tags).
type RoutePreferences struct {
	Days           int            `json:"days"`
	Preferences    []string       `json:"preferences"`
	Budget         Budget         `json:"budget"`
	Transportation Transportation `json:"transportation"`
}

// Valid reports whether the payload satisfies the request vocabulary. The
// server stays the authority; this exists so interactive callers can reject
// obviously broken input before issuing a request.
func (p RoutePreferences) Valid() bool {
	if p.Days < 1 {
		return false
	}
	switch p.Budget {
	case BudgetLow, BudgetMedium, BudgetHigh:
	default:
		return false
	}
	switch p.Transportation {
	case TransportPublic, TransportCar, TransportWalk:
	default:
		return false
	}
	return true
}
