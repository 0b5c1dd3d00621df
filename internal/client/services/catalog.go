package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/gomate/internal/client/catalog"
	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/common"
	"github.com/dmitrijs2005/gomate/internal/logging"
)

const (
	suggestedLimit     = 6
	popularRoutesLimit = 5
)

// RouteDetails is a route together with its departures.
type RouteDetails struct {
	Route     models.Route
	Schedules []models.Schedule
}

// CatalogService answers the browse and search queries of the client on top
// of a catalog.Source.
type CatalogService interface {
	Destinations(ctx context.Context) ([]models.Destination, error)
	SuggestedDestinations(ctx context.Context) ([]models.Destination, error)
	PopularDestinations(ctx context.Context) ([]models.Destination, error)
	Destination(ctx context.Context, id string) (models.Destination, error)
	SearchDestinations(ctx context.Context, query string) ([]models.Destination, error)

	Routes(ctx context.Context) ([]models.Route, error)
	PopularRoutes(ctx context.Context) ([]models.Route, error)
	Route(ctx context.Context, id string) (models.Route, error)

	Schedules(ctx context.Context) ([]models.Schedule, error)
	SchedulesForRoute(ctx context.Context, routeID string) ([]models.Schedule, error)
	Schedule(ctx context.Context, id string) (models.Schedule, error)

	BusStops(ctx context.Context) ([]models.BusStop, error)
	TrainStations(ctx context.Context) ([]models.TrainStation, error)

	// OpenRoute loads a route with its schedules and records the visit in
	// the recently viewed list.
	OpenRoute(ctx context.Context, id string) (*RouteDetails, error)
}

type catalogService struct {
	source catalog.Source
	recent RecentRoutesService
	logger logging.Logger
}

func NewCatalogService(source catalog.Source, recent RecentRoutesService, logger logging.Logger) CatalogService {
	return &catalogService{
		source: source,
		recent: recent,
		logger: logger.With("service", "catalog"),
	}
}

func (s *catalogService) Destinations(ctx context.Context) ([]models.Destination, error) {
	return s.source.Destinations(ctx)
}

func (s *catalogService) SuggestedDestinations(ctx context.Context) ([]models.Destination, error) {
	all, err := s.source.Destinations(ctx)
	if err != nil {
		return nil, err
	}
	return all[:min(len(all), suggestedLimit)], nil
}

func (s *catalogService) PopularDestinations(ctx context.Context) ([]models.Destination, error) {
	all, err := s.source.Destinations(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(d models.Destination) bool { return !d.Popular }), nil
}

func (s *catalogService) Destination(ctx context.Context, id string) (models.Destination, error) {
	return s.source.Destination(ctx, id)
}

// SearchDestinations matches query case-insensitively against name,
// description and category. An empty query matches everything.
func (s *catalogService) SearchDestinations(ctx context.Context, query string) ([]models.Destination, error) {
	all, err := s.source.Destinations(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	return slices.DeleteFunc(all, func(d models.Destination) bool {
		return !strings.Contains(strings.ToLower(d.Name), q) &&
			!strings.Contains(strings.ToLower(d.Description), q) &&
			!strings.Contains(strings.ToLower(string(d.Category)), q)
	}), nil
}

func (s *catalogService) Routes(ctx context.Context) ([]models.Route, error) {
	return s.source.Routes(ctx)
}

func (s *catalogService) PopularRoutes(ctx context.Context) ([]models.Route, error) {
	all, err := s.source.Routes(ctx)
	if err != nil {
		return nil, err
	}
	popular := slices.DeleteFunc(all, func(r models.Route) bool { return !r.Popular })
	return popular[:min(len(popular), popularRoutesLimit)], nil
}

func (s *catalogService) Route(ctx context.Context, id string) (models.Route, error) {
	return s.source.Route(ctx, id)
}

func (s *catalogService) Schedules(ctx context.Context) ([]models.Schedule, error) {
	return s.source.Schedules(ctx)
}

func (s *catalogService) SchedulesForRoute(ctx context.Context, routeID string) ([]models.Schedule, error) {
	all, err := s.source.Schedules(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(sc models.Schedule) bool { return sc.RouteID != routeID }), nil
}

func (s *catalogService) Schedule(ctx context.Context, id string) (models.Schedule, error) {
	all, err := s.source.Schedules(ctx)
	if err != nil {
		return models.Schedule{}, err
	}
	i := slices.IndexFunc(all, func(sc models.Schedule) bool { return sc.ID == id })
	if i < 0 {
		return models.Schedule{}, fmt.Errorf("schedule %s: %w", id, common.ErrorNotFound)
	}
	return all[i], nil
}

func (s *catalogService) BusStops(ctx context.Context) ([]models.BusStop, error) {
	return s.source.BusStops(ctx)
}

func (s *catalogService) TrainStations(ctx context.Context) ([]models.TrainStation, error) {
	return s.source.TrainStations(ctx)
}

// OpenRoute fails only when the route itself cannot be loaded. A failure to
// record the visit is logged and does not hide the route.
func (s *catalogService) OpenRoute(ctx context.Context, id string) (*RouteDetails, error) {
	route, err := s.source.Route(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.recent.RecordVisit(ctx, route); err != nil {
		s.logger.Warn(ctx, "could not record recent route", "route_id", id, "error", err)
	}

	schedules, err := s.SchedulesForRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RouteDetails{Route: route, Schedules: schedules}, nil
}
