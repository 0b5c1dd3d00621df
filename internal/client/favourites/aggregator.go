// Package favourites keeps an in-memory view of the user's favourites so the
// client can answer "is this starred?" without touching storage.
//
// The Aggregator owns no data. Every mutation goes to the FavouritesService
// and is followed by a full reload of all three collections, so the view
// always reflects what is stored.
package favourites

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/client/services"
	"github.com/dmitrijs2005/gomate/internal/logging"
	"golang.org/x/sync/errgroup"
)

type Aggregator struct {
	svc    services.FavouritesService
	logger logging.Logger

	// cycle serialises mutate+reload and explicit refreshes.
	cycle sync.Mutex

	mu        sync.RWMutex
	loading   bool
	dests     []models.FavouriteDestination
	routes    []models.FavouriteRoute
	schedules []models.FavouriteSchedule
	lastErr   error
}

// New builds an Aggregator and performs the initial load. A failed load is
// logged and reported by LastError; the aggregator is usable either way.
func New(ctx context.Context, svc services.FavouritesService, logger logging.Logger) *Aggregator {
	a := &Aggregator{
		svc:       svc,
		logger:    logger.With("component", "favourites"),
		loading:   true,
		dests:     []models.FavouriteDestination{},
		routes:    []models.FavouriteRoute{},
		schedules: []models.FavouriteSchedule{},
	}
	_ = a.Refresh(ctx)
	return a
}

// Refresh reloads all three collections concurrently. Collections that fail
// to load keep their previous contents.
func (a *Aggregator) Refresh(ctx context.Context) error {
	a.cycle.Lock()
	defer a.cycle.Unlock()
	return a.reload(ctx)
}

func (a *Aggregator) reload(ctx context.Context) error {
	a.mu.Lock()
	a.loading = true
	a.mu.Unlock()

	var (
		dests                   []models.FavouriteDestination
		routes                  []models.FavouriteRoute
		schedules               []models.FavouriteSchedule
		destErr, routeErr, sErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		dests, destErr = a.svc.ListDestinations(ctx)
		return destErr
	})
	g.Go(func() error {
		routes, routeErr = a.svc.ListRoutes(ctx)
		return routeErr
	})
	g.Go(func() error {
		schedules, sErr = a.svc.ListSchedules(ctx)
		return sErr
	})
	// every collection's error is reported below, not just the first
	_ = g.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	if destErr == nil {
		a.dests = dests
	} else {
		errs = append(errs, fmt.Errorf("destinations: %w", destErr))
	}
	if routeErr == nil {
		a.routes = routes
	} else {
		errs = append(errs, fmt.Errorf("routes: %w", routeErr))
	}
	if sErr == nil {
		a.schedules = schedules
	} else {
		errs = append(errs, fmt.Errorf("schedules: %w", sErr))
	}

	a.loading = false
	a.lastErr = errors.Join(errs...)
	if a.lastErr != nil {
		a.logger.Error(ctx, "failed to load favourites", "error", a.lastErr)
	}
	return a.lastErr
}

// mutate applies fn and then reloads unconditionally. It returns fn's error;
// reload failures are available through LastError.
func (a *Aggregator) mutate(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	a.cycle.Lock()
	defer a.cycle.Unlock()

	err := fn(ctx)
	if err != nil {
		a.logger.Error(ctx, "favourite update failed", "op", op, "error", err)
	}
	_ = a.reload(ctx)
	return err
}

// Loading reports whether a load is in progress.
func (a *Aggregator) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// LastError is the error of the most recent load, nil if it succeeded.
func (a *Aggregator) LastError() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastErr
}

func (a *Aggregator) Destinations() []models.FavouriteDestination {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.dests)
}

func (a *Aggregator) Routes() []models.FavouriteRoute {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.routes)
}

func (a *Aggregator) Schedules() []models.FavouriteSchedule {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.schedules)
}

func (a *Aggregator) IsDestinationFavourite(id string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.ContainsFunc(a.dests, func(f models.FavouriteDestination) bool { return f.Destination.ID == id })
}

func (a *Aggregator) IsRouteFavourite(id string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.ContainsFunc(a.routes, func(f models.FavouriteRoute) bool { return f.Route.ID == id })
}

func (a *Aggregator) IsScheduleFavourite(id string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.ContainsFunc(a.schedules, func(f models.FavouriteSchedule) bool { return f.Schedule.ID == id })
}

func (a *Aggregator) AddDestination(ctx context.Context, d models.Destination) error {
	return a.mutate(ctx, "add_destination", func(ctx context.Context) error {
		return a.svc.AddDestination(ctx, d)
	})
}

func (a *Aggregator) RemoveDestination(ctx context.Context, id string) error {
	return a.mutate(ctx, "remove_destination", func(ctx context.Context) error {
		return a.svc.RemoveDestination(ctx, id)
	})
}

func (a *Aggregator) AddRoute(ctx context.Context, r models.Route) error {
	return a.mutate(ctx, "add_route", func(ctx context.Context) error {
		return a.svc.AddRoute(ctx, r)
	})
}

func (a *Aggregator) RemoveRoute(ctx context.Context, id string) error {
	return a.mutate(ctx, "remove_route", func(ctx context.Context) error {
		return a.svc.RemoveRoute(ctx, id)
	})
}

// AddSchedule stores s with its parent route r.
func (a *Aggregator) AddSchedule(ctx context.Context, s models.Schedule, r models.Route) error {
	return a.mutate(ctx, "add_schedule", func(ctx context.Context) error {
		return a.svc.AddSchedule(ctx, s, r)
	})
}

func (a *Aggregator) RemoveSchedule(ctx context.Context, id string) error {
	return a.mutate(ctx, "remove_schedule", func(ctx context.Context) error {
		return a.svc.RemoveSchedule(ctx, id)
	})
}

// ClearAll drops every favourite.
func (a *Aggregator) ClearAll(ctx context.Context) error {
	return a.mutate(ctx, "clear_all", a.svc.ClearAll)
}
