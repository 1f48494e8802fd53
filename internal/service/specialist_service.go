package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"lexiguide/internal/domain"
)

const (
	defaultSpecialistLimit = 3
	maxSpecialistLimit     = 20
	earthRadiusKm          = 6371.0
)

// specialistDirectory is the built-in list of legal specialists.
var specialistDirectory = []domain.Specialist{
	{Name: "Law Firm A", Practice: "Contract Law", City: "New York", Latitude: 40.7128, Longitude: -74.0060},
	{Name: "Legal Consultant B", Practice: "Corporate Law", City: "New York", Latitude: 40.7580, Longitude: -73.9855},
	{Name: "Attorney C", Practice: "General Practice", City: "Chicago", Latitude: 41.8781, Longitude: -87.6298},
	{Name: "Harbor Tenancy Clinic", Practice: "Landlord and Tenant Law", City: "San Francisco", Latitude: 37.7749, Longitude: -122.4194},
	{Name: "Pacific Employment Counsel", Practice: "Employment Law", City: "Los Angeles", Latitude: 34.0522, Longitude: -118.2437},
	{Name: "Lone Star Estate Planning", Practice: "Wills and Estates", City: "Austin", Latitude: 30.2672, Longitude: -97.7431},
	{Name: "Thames Commercial Solicitors", Practice: "Commercial Contracts", City: "London", Latitude: 51.5074, Longitude: -0.1278},
	{Name: "Spree Rechtsanwälte", Practice: "Consumer Protection", City: "Berlin", Latitude: 52.5200, Longitude: 13.4050},
	{Name: "Seine Avocats", Practice: "Real Estate Law", City: "Paris", Latitude: 48.8566, Longitude: 2.3522},
	{Name: "Maple Family Law", Practice: "Family Law", City: "Toronto", Latitude: 43.6532, Longitude: -79.3832},
	{Name: "Harbour Bridge Legal", Practice: "Intellectual Property", City: "Sydney", Latitude: -33.8688, Longitude: 151.2093},
	{Name: "Marina Bay Legal", Practice: "Corporate Law", City: "Singapore", Latitude: 1.3521, Longitude: 103.8198},
}

type SpecialistService struct {
	geocoder  domain.Geocoder
	directory []domain.Specialist
	logger    domain.Logger
}

func NewSpecialistService(geocoder domain.Geocoder, logger domain.Logger) *SpecialistService {
	return &SpecialistService{
		geocoder:  geocoder,
		directory: specialistDirectory,
		logger:    logger,
	}
}

// Recommend geocodes location and returns the nearest specialists.
func (s *SpecialistService) Recommend(ctx context.Context, location string, limit int) (*domain.SpecialistRecommendation, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, &domain.ValidationError{Field: "location", Message: "location is required"}
	}
	if limit <= 0 {
		limit = defaultSpecialistLimit
	}
	if limit > maxSpecialistLimit {
		limit = maxSpecialistLimit
	}

	loc, err := s.geocoder.Geocode(ctx, location)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("Geocoding failed", "location", location, "error", err)
		if errors.Is(err, domain.ErrLocationNotFound) {
			return nil, err
		}
		// An unreachable or failing geocoder reads the same as an unknown place.
		return nil, fmt.Errorf("%w: %v", domain.ErrLocationNotFound, err)
	}

	ranked := make([]domain.Specialist, len(s.directory))
	copy(ranked, s.directory)
	for i := range ranked {
		d := haversineKm(loc.Latitude, loc.Longitude, ranked[i].Latitude, ranked[i].Longitude)
		ranked[i].DistanceKm = math.Round(d*10) / 10
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].DistanceKm < ranked[j].DistanceKm })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return &domain.SpecialistRecommendation{Location: loc, Specialists: ranked}, nil
}

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

var _ domain.SpecialistService = (*SpecialistService)(nil)
