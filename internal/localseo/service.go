// Package localseo manages business locations and their structured
// data markup.
package localseo

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	InsertLocation(l *storage.Location) (int64, error)
	GetLocation(id int64) (*storage.Location, error)
	ListLocations(projectID string) ([]*storage.Location, error)
	UpdateLocation(id int64, fields map[string]any) error
	DeleteLocation(id int64) error
}

// Geocoder resolves an address to coordinates. Implementations call an
// external geocoding API; a nil geocoder disables address resolution.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

// CreateRequest carries one new business location.
type CreateRequest struct {
	ProjectID     string          `json:"project_id,omitempty"`
	Name          string          `json:"name"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	State         string          `json:"state,omitempty"`
	Country       string          `json:"country,omitempty"`
	PostalCode    string          `json:"postal_code,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	Website       string          `json:"website,omitempty"`
	Latitude      float64         `json:"latitude,omitempty"`
	Longitude     float64         `json:"longitude,omitempty"`
	BusinessHours json.RawMessage `json:"business_hours,omitempty"`
}

// Service manages business locations.
type Service struct {
	store    Store
	geocoder Geocoder
}

// NewService creates a local SEO service. geocoder may be nil.
func NewService(store Store, geocoder Geocoder) *Service {
	return &Service{store: store, geocoder: geocoder}
}

// Create validates and stores one location. When coordinates are
// missing and a geocoder is configured, the address is resolved; a
// geocoding failure is not fatal.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*storage.Location, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errs.Invalid("Name is required")
	}
	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	if len(req.BusinessHours) > 0 && !json.Valid(req.BusinessHours) {
		return nil, errs.Invalid("Invalid business hours JSON")
	}

	l := &storage.Location{
		ProjectID:     req.ProjectID,
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		Phone:         req.Phone,
		Email:         req.Email,
		Website:       req.Website,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		BusinessHours: req.BusinessHours,
	}

	if l.Latitude == 0 && l.Longitude == 0 && s.geocoder != nil && l.Address != "" {
		lat, lng, err := s.geocoder.Geocode(ctx, fullAddress(l))
		if err == nil {
			l.Latitude = lat
			l.Longitude = lng
		}
	}

	id, err := s.store.InsertLocation(l)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to store location", Cause: err}
	}
	l.ID = id
	return l, nil
}

// Get retrieves one location.
func (s *Service) Get(id int64) (*storage.Location, error) {
	l, err := s.store.GetLocation(id)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to load location", Cause: err}
	}
	if l == nil {
		return nil, &errs.AppError{Kind: errs.NotFound, Message: "Location not found"}
	}
	return l, nil
}

// List returns locations, optionally scoped to a project.
func (s *Service) List(projectID string) ([]*storage.Location, error) {
	locations, err := s.store.ListLocations(projectID)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to list locations", Cause: err}
	}
	return locations, nil
}

// Update applies a partial update to one location.
func (s *Service) Update(id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return errs.Invalid("No fields to update")
	}
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.store.UpdateLocation(id, fields); err != nil {
		return &errs.AppError{Kind: errs.Storage, Message: "failed to update location", Cause: err}
	}
	return nil
}

// Delete removes one location.
func (s *Service) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.store.DeleteLocation(id); err != nil {
		return &errs.AppError{Kind: errs.Storage, Message: "failed to delete location", Cause: err}
	}
	return nil
}

// Nearby returns locations within radiusKm of a point, closest first,
// with Distance populated.
func (s *Service) Nearby(projectID string, lat, lng, radiusKm float64) ([]*storage.Location, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = 10
	}

	locations, err := s.store.ListLocations(projectID)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to list locations", Cause: err}
	}

	var nearby []*storage.Location
	for _, l := range locations {
		if l.Latitude == 0 && l.Longitude == 0 {
			continue
		}
		d := haversineKm(lat, lng, l.Latitude, l.Longitude)
		if d <= radiusKm {
			copied := *l
			copied.Distance = math.Round(d*100) / 100
			nearby = append(nearby, &copied)
		}
	}

	// Closest first.
	for i := 1; i < len(nearby); i++ {
		for j := i; j > 0 && nearby[j].Distance < nearby[j-1].Distance; j-- {
			nearby[j], nearby[j-1] = nearby[j-1], nearby[j]
		}
	}
	return nearby, nil
}

// Schema builds LocalBusiness JSON-LD markup for one location.
func (s *Service) Schema(id int64) (map[string]any, error) {
	l, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	schema := map[string]any{
		"@context": "https://schema.org",
		"@type":    "LocalBusiness",
		"name":     l.Name,
	}
	if l.Phone != "" {
		schema["telephone"] = l.Phone
	}
	if l.Email != "" {
		schema["email"] = l.Email
	}
	if l.Website != "" {
		schema["url"] = l.Website
	}

	address := map[string]any{"@type": "PostalAddress"}
	hasAddress := false
	for key, value := range map[string]string{
		"streetAddress":   l.Address,
		"addressLocality": l.City,
		"addressRegion":   l.State,
		"addressCountry":  l.Country,
		"postalCode":      l.PostalCode,
	} {
		if value != "" {
			address[key] = value
			hasAddress = true
		}
	}
	if hasAddress {
		schema["address"] = address
	}

	if l.Latitude != 0 || l.Longitude != 0 {
		schema["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  l.Latitude,
			"longitude": l.Longitude,
		}
	}

	if len(l.BusinessHours) > 0 {
		var hours map[string]string
		if err := json.Unmarshal(l.BusinessHours, &hours); err == nil && len(hours) > 0 {
			schema["openingHoursSpecification"] = openingHours(hours)
		}
	}

	return schema, nil
}

// openingHours converts {"monday": "9:00-17:00"} pairs into
// OpeningHoursSpecification entries. Days are emitted in week order.
func openingHours(hours map[string]string) []map[string]any {
	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

	var specs []map[string]any
	for _, day := range weekdays {
		span, ok := hours[day]
		if !ok {
			continue
		}
		parts := strings.SplitN(span, "-", 2)
		if len(parts) != 2 {
			continue
		}
		specs = append(specs, map[string]any{
			"@type":     "OpeningHoursSpecification",
			"dayOfWeek": capitalize(day),
			"opens":     strings.TrimSpace(parts[0]),
			"closes":    strings.TrimSpace(parts[1]),
		})
	}
	return specs
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func fullAddress(l *storage.Location) string {
	parts := []string{}
	for _, p := range []string{l.Address, l.City, l.State, l.PostalCode, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return errs.Invalid("Latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return errs.Invalid("Longitude must be between -180 and 180")
	}
	return nil
}

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance between two points.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
