// Package catalog provides read access to the GoMate travel catalog:
// destinations, routes, schedules, bus stops and train stations.
//
// Two sources exist. LocalSource serves the fixture bundled into the binary
// (or any Catalog handed to it); HTTPSource talks to a remote JSON API laid
// out like json-server, with one collection per path.
package catalog

import (
	"context"

	"github.com/dmitrijs2005/gomate/internal/client/models"
)

// Source is a read-only catalog.
//
// Destination and Route return an error matching common.ErrorNotFound when
// the id is unknown. Remote failures match common.ErrCatalogUnavailable.
type Source interface {
	Destinations(ctx context.Context) ([]models.Destination, error)
	Destination(ctx context.Context, id string) (models.Destination, error)
	Routes(ctx context.Context) ([]models.Route, error)
	Route(ctx context.Context, id string) (models.Route, error)
	Schedules(ctx context.Context) ([]models.Schedule, error)
	BusStops(ctx context.Context) ([]models.BusStop, error)
	TrainStations(ctx context.Context) ([]models.TrainStation, error)
}

// Collection paths of the remote API.
const (
	PathDestinations  = "/destinations"
	PathRoutes        = "/routes"
	PathSchedules     = "/schedules"
	PathBusStops      = "/busStops"
	PathTrainStations = "/trainStations"
)
