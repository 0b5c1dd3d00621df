package services

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gomate/internal/common"
	"github.com/dmitrijs2005/gomate/internal/logging"
	"github.com/google/uuid"
)

// FavouritesService manages the three favourite collections. Each is a JSON
// array under its own key, newest first, with at most one entry per
// underlying entity id.
type FavouritesService interface {
	ListDestinations(ctx context.Context) ([]models.FavouriteDestination, error)
	AddDestination(ctx context.Context, d models.Destination) error
	RemoveDestination(ctx context.Context, destinationID string) error
	IsDestinationFavourite(ctx context.Context, destinationID string) (bool, error)

	ListRoutes(ctx context.Context) ([]models.FavouriteRoute, error)
	AddRoute(ctx context.Context, r models.Route) error
	RemoveRoute(ctx context.Context, routeID string) error
	IsRouteFavourite(ctx context.Context, routeID string) (bool, error)

	ListSchedules(ctx context.Context) ([]models.FavouriteSchedule, error)
	AddSchedule(ctx context.Context, s models.Schedule, r models.Route) error
	RemoveSchedule(ctx context.Context, scheduleID string) error
	IsScheduleFavourite(ctx context.Context, scheduleID string) (bool, error)

	// ClearAll drops all three collections.
	ClearAll(ctx context.Context) error
}

// collection is one favourites list stored under key.
type collection[F any] struct {
	store    kv.Store
	logger   logging.Logger
	key      string
	entityID func(F) string
}

func (c *collection[F]) read(ctx context.Context, r kv.Repository) ([]F, error) {
	var items []F
	if _, err := kv.GetJSON(ctx, r, c.key, &items); err != nil {
		return nil, storageFailure("read", c.key, err)
	}
	if items == nil {
		items = []F{}
	}
	return items, nil
}

func (c *collection[F]) list(ctx context.Context) ([]F, error) {
	items, err := c.read(ctx, c.store)
	if err != nil {
		return nil, logStorageFailure(ctx, c.logger, err)
	}
	return items, nil
}

func (c *collection[F]) contains(ctx context.Context, id string) (bool, error) {
	items, err := c.list(ctx)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(items, func(f F) bool { return c.entityID(f) == id }), nil
}

// add prepends the entry built by mk unless the entity is already present.
func (c *collection[F]) add(ctx context.Context, id string, mk func() F) error {
	added := false
	err := update(ctx, c.store, c.logger, func(ctx context.Context, r kv.Repository) error {
		items, err := c.read(ctx, r)
		if err != nil {
			return err
		}
		if slices.ContainsFunc(items, func(f F) bool { return c.entityID(f) == id }) {
			return nil
		}
		items = append([]F{mk()}, items...)
		if err := kv.SetJSON(ctx, r, c.key, items); err != nil {
			return storageFailure("write", c.key, err)
		}
		added = true
		return nil
	})
	if err == nil && added {
		c.logger.Debug(ctx, "favourite added", "key", c.key, "entity_id", id)
	}
	return err
}

func (c *collection[F]) remove(ctx context.Context, id string) error {
	return update(ctx, c.store, c.logger, func(ctx context.Context, r kv.Repository) error {
		items, err := c.read(ctx, r)
		if err != nil {
			return err
		}
		kept := slices.DeleteFunc(items, func(f F) bool { return c.entityID(f) == id })
		if err := kv.SetJSON(ctx, r, c.key, kept); err != nil {
			return storageFailure("write", c.key, err)
		}
		return nil
	})
}

type favouritesService struct {
	store     kv.Store
	logger    logging.Logger
	now       func() time.Time
	newID     func() string
	dests     *collection[models.FavouriteDestination]
	routes    *collection[models.FavouriteRoute]
	schedules *collection[models.FavouriteSchedule]
}

// NewFavouritesService constructs a FavouritesService over store.
func NewFavouritesService(store kv.Store, logger logging.Logger) FavouritesService {
	logger = logger.With("service", "favourites")
	return &favouritesService{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
		dests: &collection[models.FavouriteDestination]{
			store: store, logger: logger, key: common.KeyFavouriteDestinations,
			entityID: func(f models.FavouriteDestination) string { return f.Destination.ID },
		},
		routes: &collection[models.FavouriteRoute]{
			store: store, logger: logger, key: common.KeyFavouriteRoutes,
			entityID: func(f models.FavouriteRoute) string { return f.Route.ID },
		},
		schedules: &collection[models.FavouriteSchedule]{
			store: store, logger: logger, key: common.KeyFavouriteSchedules,
			entityID: func(f models.FavouriteSchedule) string { return f.Schedule.ID },
		},
	}
}

func (s *favouritesService) ListDestinations(ctx context.Context) ([]models.FavouriteDestination, error) {
	return s.dests.list(ctx)
}

func (s *favouritesService) AddDestination(ctx context.Context, d models.Destination) error {
	return s.dests.add(ctx, d.ID, func() models.FavouriteDestination {
		return models.FavouriteDestination{ID: "dest_" + s.newID(), Destination: d, AddedAt: s.now().UTC()}
	})
}

func (s *favouritesService) RemoveDestination(ctx context.Context, destinationID string) error {
	return s.dests.remove(ctx, destinationID)
}

func (s *favouritesService) IsDestinationFavourite(ctx context.Context, destinationID string) (bool, error) {
	return s.dests.contains(ctx, destinationID)
}

func (s *favouritesService) ListRoutes(ctx context.Context) ([]models.FavouriteRoute, error) {
	return s.routes.list(ctx)
}

func (s *favouritesService) AddRoute(ctx context.Context, r models.Route) error {
	return s.routes.add(ctx, r.ID, func() models.FavouriteRoute {
		return models.FavouriteRoute{ID: "route_" + s.newID(), Route: r, AddedAt: s.now().UTC()}
	})
}

func (s *favouritesService) RemoveRoute(ctx context.Context, routeID string) error {
	return s.routes.remove(ctx, routeID)
}

func (s *favouritesService) IsRouteFavourite(ctx context.Context, routeID string) (bool, error) {
	return s.routes.contains(ctx, routeID)
}

func (s *favouritesService) ListSchedules(ctx context.Context) ([]models.FavouriteSchedule, error) {
	return s.schedules.list(ctx)
}

// AddSchedule stores the schedule together with its parent route.
func (s *favouritesService) AddSchedule(ctx context.Context, sc models.Schedule, r models.Route) error {
	return s.schedules.add(ctx, sc.ID, func() models.FavouriteSchedule {
		return models.FavouriteSchedule{ID: "schedule_" + s.newID(), Schedule: sc, Route: r, AddedAt: s.now().UTC()}
	})
}

func (s *favouritesService) RemoveSchedule(ctx context.Context, scheduleID string) error {
	return s.schedules.remove(ctx, scheduleID)
}

func (s *favouritesService) IsScheduleFavourite(ctx context.Context, scheduleID string) (bool, error) {
	return s.schedules.contains(ctx, scheduleID)
}

func (s *favouritesService) ClearAll(ctx context.Context) error {
	return update(ctx, s.store, s.logger, func(ctx context.Context, r kv.Repository) error {
		for _, key := range []string{
			common.KeyFavouriteDestinations,
			common.KeyFavouriteRoutes,
			common.KeyFavouriteSchedules,
		} {
			if err := r.Delete(ctx, key); err != nil {
				return storageFailure("delete", key, err)
			}
		}
		return nil
	})
}
