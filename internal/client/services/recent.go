package services

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gomate/internal/common"
	"github.com/dmitrijs2005/gomate/internal/logging"
)

// RecentRoutesService keeps the recently viewed routes, most recent first,
// bounded by common.RecentRoutesLimit. Visiting a route already in the list
// moves it to the front.
type RecentRoutesService interface {
	RecordVisit(ctx context.Context, r models.Route) error
	List(ctx context.Context) ([]models.Route, error)
	Clear(ctx context.Context) error
}

type recentRoutesService struct {
	store  kv.Store
	logger logging.Logger
	limit  int
}

func NewRecentRoutesService(store kv.Store, logger logging.Logger) RecentRoutesService {
	return &recentRoutesService{
		store:  store,
		logger: logger.With("service", "recent_routes"),
		limit:  common.RecentRoutesLimit,
	}
}

func (s *recentRoutesService) read(ctx context.Context, r kv.Repository) ([]models.Route, error) {
	var routes []models.Route
	if _, err := kv.GetJSON(ctx, r, common.KeyRecentRoutes, &routes); err != nil {
		return nil, storageFailure("read", common.KeyRecentRoutes, err)
	}
	if routes == nil {
		routes = []models.Route{}
	}
	return routes, nil
}

func (s *recentRoutesService) RecordVisit(ctx context.Context, route models.Route) error {
	return update(ctx, s.store, s.logger, func(ctx context.Context, r kv.Repository) error {
		routes, err := s.read(ctx, r)
		if err != nil {
			return err
		}
		routes = slices.DeleteFunc(routes, func(x models.Route) bool { return x.ID == route.ID })
		routes = append([]models.Route{route}, routes...)
		if len(routes) > s.limit {
			routes = routes[:s.limit]
		}
		if err := kv.SetJSON(ctx, r, common.KeyRecentRoutes, routes); err != nil {
			return storageFailure("write", common.KeyRecentRoutes, err)
		}
		return nil
	})
}

func (s *recentRoutesService) List(ctx context.Context) ([]models.Route, error) {
	routes, err := s.read(ctx, s.store)
	if err != nil {
		return nil, logStorageFailure(ctx, s.logger, err)
	}
	return routes, nil
}

func (s *recentRoutesService) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, common.KeyRecentRoutes); err != nil {
		return logStorageFailure(ctx, s.logger, storageFailure("delete", common.KeyRecentRoutes, err))
	}
	return nil
}
