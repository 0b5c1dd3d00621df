package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/common"
)

//go:embed data/db.json
var fixture []byte

// Decode reads a catalog document.
func Decode(r io.Reader) (models.Catalog, error) {
	var c models.Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return models.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return c, nil
}

// Fixture returns the bundled catalog.
func Fixture() (models.Catalog, error) {
	var c models.Catalog
	if err := json.Unmarshal(fixture, &c); err != nil {
		return models.Catalog{}, fmt.Errorf("decode bundled catalog: %w", err)
	}
	return c, nil
}

// LocalSource serves an in-memory Catalog. Results are deep copies: callers
// may modify them, including the slices inside a Destination.
type LocalSource struct {
	c models.Catalog
}

func NewLocalSource(c models.Catalog) *LocalSource {
	return &LocalSource{c: c}
}

// NewFixtureSource returns a LocalSource over the bundled catalog.
func NewFixtureSource() (*LocalSource, error) {
	c, err := Fixture()
	if err != nil {
		return nil, err
	}
	return NewLocalSource(c), nil
}

func (s *LocalSource) Destinations(context.Context) ([]models.Destination, error) {
	out := make([]models.Destination, len(s.c.Destinations))
	for i, d := range s.c.Destinations {
		out[i] = d.Clone()
	}
	return out, nil
}

func (s *LocalSource) Destination(_ context.Context, id string) (models.Destination, error) {
	i := slices.IndexFunc(s.c.Destinations, func(d models.Destination) bool { return d.ID == id })
	if i < 0 {
		return models.Destination{}, fmt.Errorf("destination %s: %w", id, common.ErrorNotFound)
	}
	return s.c.Destinations[i].Clone(), nil
}

func (s *LocalSource) Routes(context.Context) ([]models.Route, error) {
	return cloneOrEmpty(s.c.Routes), nil
}

func (s *LocalSource) Route(_ context.Context, id string) (models.Route, error) {
	i := slices.IndexFunc(s.c.Routes, func(r models.Route) bool { return r.ID == id })
	if i < 0 {
		return models.Route{}, fmt.Errorf("route %s: %w", id, common.ErrorNotFound)
	}
	return s.c.Routes[i], nil
}

func (s *LocalSource) Schedules(context.Context) ([]models.Schedule, error) {
	return cloneOrEmpty(s.c.Schedules), nil
}

func (s *LocalSource) BusStops(context.Context) ([]models.BusStop, error) {
	return cloneOrEmpty(s.c.BusStops), nil
}

func (s *LocalSource) TrainStations(context.Context) ([]models.TrainStation, error) {
	return cloneOrEmpty(s.c.TrainStations), nil
}

func cloneOrEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
