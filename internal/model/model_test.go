package model

import (
	"encoding/json"
	"testing"
)

func TestSpot_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("discrete fields fill coordinates", func(t *testing.T) {
		t.Parallel()
		s := Spot{Longitude: 104.07, Latitude: 30.67}
		s.Normalize()
		if s.Coordinates != [2]float64{104.07, 30.67} {
			t.Fatalf("coordinates = %v", s.Coordinates)
		}
	})

	t.Run("coordinates fill discrete fields", func(t *testing.T) {
		t.Parallel()
		s := Spot{Coordinates: [2]float64{104.07, 30.67}}
		s.Normalize()
		if s.Longitude != 104.07 || s.Latitude != 30.67 {
			t.Fatalf("lng/lat = %v/%v", s.Longitude, s.Latitude)
		}
	})

	t.Run("discrete fields win when both set", func(t *testing.T) {
		t.Parallel()
		s := Spot{Longitude: 1, Latitude: 2, Coordinates: [2]float64{9, 9}}
		s.Normalize()
		if s.Coordinates != [2]float64{1, 2} {
			t.Fatalf("coordinates = %v", s.Coordinates)
		}
	})
}

func TestSpot_DecodeBackendPayload(t *testing.T) {
	t.Parallel()

	raw := `{"id":"1","name":"Wuhou Shrine","longitude":104.0478,"latitude":30.6465,
		"openTime":"08:00-18:00","price":"¥50","ticket_price":50,
		"tags":["history","temple"],"suggestedTime":"2h"}`
	var s Spot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s.Normalize()
	if s.Name != "Wuhou Shrine" || s.TicketPrice != 50 || len(s.Tags) != 2 {
		t.Fatalf("decoded: %+v", s)
	}
	if s.Coordinates != [2]float64{104.0478, 30.6465} {
		t.Fatalf("coordinates = %v", s.Coordinates)
	}
}

func TestRoutePreferences_Valid(t *testing.T) {
	t.Parallel()

	ok := RoutePreferences{Days: 2, Budget: BudgetLow, Transportation: TransportWalk}
	if !ok.Valid() {
		t.Fatalf("expected valid: %+v", ok)
	}

	bad := []RoutePreferences{
		{Days: 0, Budget: BudgetLow, Transportation: TransportWalk},
		{Days: 1, Budget: "lavish", Transportation: TransportWalk},
		{Days: 1, Budget: BudgetHigh, Transportation: "teleport"},
		{},
	}
	for i, p := range bad {
		if p.Valid() {
			t.Fatalf("case %d expected invalid: %+v", i, p)
		}
	}
}
