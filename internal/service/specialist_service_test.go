package service

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexiguide/internal/domain"
	"lexiguide/internal/geo"
)

func newTestSpecialistService() *SpecialistService {
	return NewSpecialistService(&MockGeocoder{locations: map[string]*domain.GeoLocation{
		"brooklyn": {Query: "brooklyn", DisplayName: "Brooklyn, NY", Latitude: 40.6782, Longitude: -73.9442},
		"london":   {Query: "london", DisplayName: "London, UK", Latitude: 51.5072, Longitude: -0.1276},
	}}, NewMockLogger())
}

func TestSpecialistService_RecommendNearest(t *testing.T) {
	svc := newTestSpecialistService()

	rec, err := svc.Recommend(context.Background(), "Brooklyn", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rec.Specialists) != defaultSpecialistLimit {
		t.Fatalf("Expected %d specialists, got %d", defaultSpecialistLimit, len(rec.Specialists))
	}
	for _, s := range rec.Specialists[:2] {
		if s.City != "New York" {
			t.Errorf("Expected New York specialists first, got %s (%s)", s.Name, s.City)
		}
	}
	for i := 1; i < len(rec.Specialists); i++ {
		if rec.Specialists[i].DistanceKm < rec.Specialists[i-1].DistanceKm {
			t.Errorf("Expected ascending distance, got %v", rec.Specialists)
		}
	}
	if rec.Location.DisplayName != "Brooklyn, NY" {
		t.Errorf("Unexpected location %+v", rec.Location)
	}

	rec, err = svc.Recommend(context.Background(), "london", 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rec.Specialists) != 1 || rec.Specialists[0].City != "London" {
		t.Errorf("Expected London specialist, got %v", rec.Specialists)
	}
}

func TestSpecialistService_RecommendErrors(t *testing.T) {
	svc := newTestSpecialistService()

	var verr *domain.ValidationError
	if _, err := svc.Recommend(context.Background(), "  ", 3); !errors.As(err, &verr) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if _, err := svc.Recommend(context.Background(), "atlantis", 3); !errors.Is(err, domain.ErrLocationNotFound) {
		t.Errorf("Expected ErrLocationNotFound, got %v", err)
	}
}

func TestSpecialistService_DoesNotMutateDirectory(t *testing.T) {
	svc := newTestSpecialistService()
	_, _ = svc.Recommend(context.Background(), "london", 50)
	for _, s := range svc.directory {
		if s.DistanceKm != 0 {
			t.Fatalf("Expected directory distances to stay zero, got %v for %s", s.DistanceKm, s.Name)
		}
	}
}

func TestHaversineKm(t *testing.T) {
	// New York to London is about 5570 km.
	d := haversineKm(40.7128, -74.0060, 51.5074, -0.1278)
	if math.Abs(d-5570) > 20 {
		t.Errorf("Expected ~5570 km, got %.1f", d)
	}
	if haversineKm(1, 2, 1, 2) != 0 {
		t.Error("Expected zero distance for identical points")
	}
}

func TestSpecialistService_GeocoderUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewSpecialistService(geo.NewNominatimClient(srv.URL, "lexiguide-test"), NewMockLogger())
	_, err := svc.Recommend(context.Background(), "Chicago", 3)
	if !errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("Expected ErrLocationNotFound for failing geocoder, got %v", err)
	}
}

func TestSpecialistService_GeocoderCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewSpecialistService(geo.NewNominatimClient(srv.URL, "lexiguide-test"), NewMockLogger())
	if _, err := svc.Recommend(ctx, "Chicago", 3); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}
