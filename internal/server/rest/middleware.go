package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gomate/internal/logging"
	"github.com/google/uuid"
)

// HeaderRequestID carries the id assigned to each request. A client-supplied
// value is kept.
const HeaderRequestID = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := logging.ContextWith(r.Context(), "request_id", id)

		next.ServeHTTP(rec, r.WithContext(ctx))

		s.logger.Debug(ctx, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
