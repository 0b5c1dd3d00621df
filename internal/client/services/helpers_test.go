package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/gomate/internal/client/localdb"
	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/client/repositories/kv"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// flakyStore wraps a Store and fails the selected operations on demand.
type flakyStore struct {
	kv.Store
	failGet    atomic.Bool
	failSet    atomic.Bool
	failDelete atomic.Bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Store: kv.NewMemoryStore()}
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet.Load() {
		return nil, errBoom
	}
	return f.Store.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet.Load() {
		return errBoom
	}
	return f.Store.Set(ctx, key, value)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	if f.failDelete.Load() {
		return errBoom
	}
	return f.Store.Delete(ctx, key)
}

func (f *flakyStore) Update(ctx context.Context, fn func(ctx context.Context, r kv.Repository) error) error {
	return f.Store.Update(ctx, func(ctx context.Context, r kv.Repository) error {
		return fn(ctx, &flakyRepo{Repository: r, f: f})
	})
}

type flakyRepo struct {
	kv.Repository
	f *flakyStore
}

func (r *flakyRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if r.f.failGet.Load() {
		return nil, errBoom
	}
	return r.Repository.Get(ctx, key)
}

func (r *flakyRepo) Set(ctx context.Context, key string, value []byte) error {
	if r.f.failSet.Load() {
		return errBoom
	}
	return r.Repository.Set(ctx, key, value)
}

func (r *flakyRepo) Delete(ctx context.Context, key string) error {
	if r.f.failDelete.Load() {
		return errBoom
	}
	return r.Repository.Delete(ctx, key)
}

func newSQLiteStore(t *testing.T) *kv.SQLiteStore {
	t.Helper()
	db, err := localdb.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	s := kv.NewSQLiteStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// stepClock returns a now func that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	var n atomic.Int64
	return func() time.Time {
		return start.Add(time.Duration(n.Add(1)-1) * time.Second)
	}
}

var (
	testDest  = models.Destination{ID: "1", Name: "Sigiriya Rock Fortress", Category: models.CategoryLandmark, Popular: true}
	testDest2 = models.Destination{ID: "2", Name: "Temple of the Tooth", Category: models.CategoryReligious}

	testRoute  = models.Route{ID: "r1", Name: "Colombo to Kandy", From: "Colombo", To: "Kandy", TransportMode: models.TransportTrain, Popular: true}
	testRoute2 = models.Route{ID: "r2", Name: "Kandy to Ella", From: "Kandy", To: "Ella", TransportMode: models.TransportTrain, Scenic: true}

	testSchedule = models.Schedule{ID: "s1", RouteID: "r1", DepartureTime: "07:00", ArrivalTime: "09:30", Status: models.StatusOnTime}
)
