package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gomate/internal/common"
	"github.com/dmitrijs2005/gomate/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavourites(store kv.Store) *favouritesService {
	s := NewFavouritesService(store, logging.Nop()).(*favouritesService)
	s.now = stepClock(t0)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
	return s
}

func TestFavourites_AddListNewestFirst(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newFavourites(store)

			require.NoError(t, s.AddDestination(ctx, testDest))
			require.NoError(t, s.AddDestination(ctx, testDest2))

			got, err := s.ListDestinations(ctx)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, testDest2.ID, got[0].Destination.ID)
			assert.Equal(t, testDest.ID, got[1].Destination.ID)
			assert.Equal(t, "dest_id2", got[0].ID)
			assert.Equal(t, "dest_id1", got[1].ID)
			assert.True(t, got[1].AddedAt.Equal(t0))
			assert.True(t, got[0].AddedAt.Equal(t0.Add(time.Second)))
			assert.Equal(t, testDest, got[1].Destination)
		})
	}
}

func TestFavourites_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newFavourites(kv.NewMemoryStore())

	require.NoError(t, s.AddRoute(ctx, testRoute))
	before, err := s.ListRoutes(ctx)
	require.NoError(t, err)

	changed := testRoute
	changed.Name = "renamed"
	require.NoError(t, s.AddRoute(ctx, changed))

	after, err := s.ListRoutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, "Colombo to Kandy", after[0].Route.Name)
}

func TestFavourites_RemoveIsTotal(t *testing.T) {
	ctx := context.Background()
	s := newFavourites(kv.NewMemoryStore())

	// absent id on an empty collection
	require.NoError(t, s.RemoveRoute(ctx, "missing"))
	got, err := s.ListRoutes(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.AddRoute(ctx, testRoute))
	require.NoError(t, s.AddRoute(ctx, testRoute2))

	require.NoError(t, s.RemoveRoute(ctx, "missing"))
	got, err = s.ListRoutes(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, s.RemoveRoute(ctx, testRoute.ID))
	got, err = s.ListRoutes(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, testRoute2.ID, got[0].Route.ID)

	ok, err := s.IsRouteFavourite(ctx, testRoute.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFavourites_ScheduleCarriesRoute(t *testing.T) {
	ctx := context.Background()
	s := newFavourites(kv.NewMemoryStore())

	require.NoError(t, s.AddSchedule(ctx, testSchedule, testRoute))
	require.NoError(t, s.AddSchedule(ctx, testSchedule, testRoute2))

	got, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "schedule_id1", got[0].ID)
	assert.Equal(t, testSchedule, got[0].Schedule)
	assert.Equal(t, testRoute, got[0].Route)

	ok, err := s.IsScheduleFavourite(ctx, testSchedule.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.RemoveSchedule(ctx, testSchedule.ID))
	ok, err = s.IsScheduleFavourite(ctx, testSchedule.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFavourites_CollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := newFavourites(kv.NewMemoryStore())

	// same underlying id in different collections
	require.NoError(t, s.AddDestination(ctx, models.Destination{ID: "1", Name: "d"}))
	require.NoError(t, s.AddRoute(ctx, models.Route{ID: "1", Name: "r"}))
	require.NoError(t, s.AddSchedule(ctx, models.Schedule{ID: "1"}, models.Route{ID: "1"}))

	require.NoError(t, s.RemoveRoute(ctx, "1"))

	ok, err := s.IsDestinationFavourite(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.IsRouteFavourite(ctx, "1")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.IsScheduleFavourite(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFavourites_PersistedUnderKnownKeys(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	s := newFavourites(store)

	require.NoError(t, s.AddDestination(ctx, testDest))
	require.NoError(t, s.AddRoute(ctx, testRoute))
	require.NoError(t, s.AddSchedule(ctx, testSchedule, testRoute))

	var raw []map[string]any
	found, err := kv.GetJSON(ctx, store, common.KeyFavouriteSchedules, &raw)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, raw, 1)
	assert.Contains(t, raw[0], "schedule")
	assert.Contains(t, raw[0], "route")
	assert.Contains(t, raw[0], "addedAt")

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, common.KeyFavouriteDestinations)
	assert.Contains(t, all, common.KeyFavouriteRoutes)

	require.NoError(t, s.ClearAll(ctx))
	all, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFavourites_ReadsDocumentsWrittenByMobileClient(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	doc := `[{"id":"dest_1700000000000","destination":{"id":"1","name":"Sigiriya Rock Fortress","category":"landmark","description":"x","image":"","latitude":7.95,"longitude":80.76,"rating":4.8,"popular":true},"addedAt":"2024-11-14T22:13:20.000Z"}]`
	require.NoError(t, store.Set(ctx, common.KeyFavouriteDestinations, []byte(doc)))

	s := newFavourites(store)
	got, err := s.ListDestinations(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dest_1700000000000", got[0].ID)
	assert.Equal(t, models.CategoryLandmark, got[0].Destination.Category)

	ok, err := s.IsDestinationFavourite(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFavourites_StorageFailures(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	s := newFavourites(store)

	store.failGet.Store(true)
	_, err := s.ListDestinations(ctx)
	require.ErrorIs(t, err, common.ErrStorageFailure)
	_, err = s.IsRouteFavourite(ctx, "1")
	require.ErrorIs(t, err, common.ErrStorageFailure)
	require.ErrorIs(t, s.AddRoute(ctx, testRoute), common.ErrStorageFailure)
	store.failGet.Store(false)

	store.failSet.Store(true)
	require.ErrorIs(t, s.AddDestination(ctx, testDest), common.ErrStorageFailure)
	require.ErrorIs(t, s.RemoveSchedule(ctx, "s1"), common.ErrStorageFailure)
	store.failSet.Store(false)

	got, err := s.ListDestinations(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	store.failDelete.Store(true)
	require.ErrorIs(t, s.ClearAll(ctx), common.ErrStorageFailure)
}
