package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gomate/internal/client/catalog"
	"github.com/dmitrijs2005/gomate/internal/client/models"
	"github.com/dmitrijs2005/gomate/internal/common"
	"github.com/gorilla/mux"
)

// Router returns the API routes:
//
//	GET /health
//	GET /destinations            GET /destinations/{id}
//	GET /routes                  GET /routes/{id}
//	GET /schedules[?routeId=]    GET /schedules/{id}
//	GET /busStops
//	GET /trainStations
func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc(catalog.PathDestinations, s.jsonHandler(func(ctx context.Context, _ *http.Request) (any, error) {
		return s.source.Destinations(ctx)
	})).Methods(http.MethodGet)
	r.HandleFunc(catalog.PathDestinations+"/{id}", s.jsonHandler(func(ctx context.Context, r *http.Request) (any, error) {
		return s.source.Destination(ctx, mux.Vars(r)["id"])
	})).Methods(http.MethodGet)

	r.HandleFunc(catalog.PathRoutes, s.jsonHandler(func(ctx context.Context, _ *http.Request) (any, error) {
		return s.source.Routes(ctx)
	})).Methods(http.MethodGet)
	r.HandleFunc(catalog.PathRoutes+"/{id}", s.jsonHandler(func(ctx context.Context, r *http.Request) (any, error) {
		return s.source.Route(ctx, mux.Vars(r)["id"])
	})).Methods(http.MethodGet)

	r.HandleFunc(catalog.PathSchedules, s.jsonHandler(s.schedules)).Methods(http.MethodGet)
	r.HandleFunc(catalog.PathSchedules+"/{id}", s.jsonHandler(s.schedule)).Methods(http.MethodGet)

	r.HandleFunc(catalog.PathBusStops, s.jsonHandler(func(ctx context.Context, _ *http.Request) (any, error) {
		return s.source.BusStops(ctx)
	})).Methods(http.MethodGet)
	r.HandleFunc(catalog.PathTrainStations, s.jsonHandler(func(ctx context.Context, _ *http.Request) (any, error) {
		return s.source.TrainStations(ctx)
	})).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{})
	})
	return r
}

func (s *HTTPServer) schedules(ctx context.Context, r *http.Request) (any, error) {
	all, err := s.source.Schedules(ctx)
	if err != nil {
		return nil, err
	}
	routeID := r.URL.Query().Get("routeId")
	if routeID == "" {
		return all, nil
	}
	out := []models.Schedule{}
	for _, sc := range all {
		if sc.RouteID == routeID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *HTTPServer) schedule(ctx context.Context, r *http.Request) (any, error) {
	all, err := s.source.Schedules(ctx)
	if err != nil {
		return nil, err
	}
	id := mux.Vars(r)["id"]
	for _, sc := range all {
		if sc.ID == id {
			return sc, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *HTTPServer) jsonHandler(fetch func(ctx context.Context, r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fetch(r.Context(), r)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				// json-server answers unknown ids with an empty object
				writeJSON(w, http.StatusNotFound, map[string]string{})
				return
			}
			s.logger.Error(r.Context(), "catalog read failed", "path", r.URL.Path, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
