package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/common"
	"github.com/dmitrijs2005/gomate/internal/logging"
	"github.com/dmitrijs2005/gomate/internal/netx"
)

// HTTPSource reads the catalog from a remote JSON API.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewHTTPSource builds a source for baseURL. timeout bounds every request;
// zero means no limit.
func NewHTTPSource(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog url %q: scheme must be http or https", baseURL)
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("component", "catalog_http"),
	}, nil
}

func (s *HTTPSource) get(ctx context.Context, path string, v any) error {
	endpoint := s.baseURL + path
	err := netx.GetJSON(ctx, s.client, endpoint, v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, netx.ErrNotFound):
		return fmt.Errorf("%s: %w", path, common.ErrorNotFound)
	default:
		s.logger.Warn(ctx, "catalog request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %w", common.ErrCatalogUnavailable, err)
	}
}

func list[T any](ctx context.Context, s *HTTPSource, path string) ([]T, error) {
	var out []T
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (s *HTTPSource) Destinations(ctx context.Context) ([]models.Destination, error) {
	return list[models.Destination](ctx, s, PathDestinations)
}

func (s *HTTPSource) Destination(ctx context.Context, id string) (models.Destination, error) {
	var d models.Destination
	err := s.get(ctx, PathDestinations+"/"+url.PathEscape(id), &d)
	return d, err
}

func (s *HTTPSource) Routes(ctx context.Context) ([]models.Route, error) {
	return list[models.Route](ctx, s, PathRoutes)
}

func (s *HTTPSource) Route(ctx context.Context, id string) (models.Route, error) {
	var r models.Route
	err := s.get(ctx, PathRoutes+"/"+url.PathEscape(id), &r)
	return r, err
}

func (s *HTTPSource) Schedules(ctx context.Context) ([]models.Schedule, error) {
	return list[models.Schedule](ctx, s, PathSchedules)
}

func (s *HTTPSource) BusStops(ctx context.Context) ([]models.BusStop, error) {
	return list[models.BusStop](ctx, s, PathBusStops)
}

func (s *HTTPSource) TrainStations(ctx context.Context) ([]models.TrainStation, error) {
	return list[models.TrainStation](ctx, s, PathTrainStations)
}
