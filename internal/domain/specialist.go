package domain

import "context"

// GeoLocation is a resolved free-text location.
type GeoLocation struct {
	Query       string  `json:"query"`
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Specialist is a legal professional from the built-in directory.
type Specialist struct {
	Name       string  `json:"name"`
	Practice   string  `json:"practice"`
	City       string  `json:"city"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

type SpecialistRecommendation struct {
	Location    *GeoLocation `json:"location"`
	Specialists []Specialist `json:"specialists"`
}

// Geocoder resolves a free-text location. Unknown places return ErrLocationNotFound.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*GeoLocation, error)
}

type SpecialistService interface {
	Recommend(ctx context.Context, location string, limit int) (*SpecialistRecommendation, error)
}
