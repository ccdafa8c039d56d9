package http

import (
	"bytes"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/market-scout/marketscout/internal/port/outbound/cache"
)

// cacheOptions configures a single cached route.
type cacheOptions struct {
	// varyByIdentity partitions entries per authenticated caller. Leave it
	// off for identity-independent responses: write paths invalidate the
	// shared key only, so a varied entry outlives invalidation until its
	// TTL.
	varyByIdentity bool

	// ttl overrides the server-wide cache TTL when non-zero.
	ttl time.Duration
}

// cached wraps a read handler with the response cache. A hit is served
// without invoking the handler; on a miss the handler runs and its body is
// stored only when it answered 200. Cache failures are logged and the
// request proceeds as if the cache did not exist.
func (s *Server) cached(next http.HandlerFunc, opts cacheOptions) http.HandlerFunc {
	ttl := opts.ttl
	if ttl == 0 {
		ttl = s.cacheTTL
	}

	return func(w http.ResponseWriter, r *http.Request) {
		key := cache.RequestKey(r.URL.Path, r.URL.Query())
		if opts.varyByIdentity {
			if userID := s.callerIdentity(r); userID != "" {
				key = cache.WithIdentity(key, userID)
			}
		}

		body, err := s.responseCache.Get(r.Context(), key)
		if err != nil {
			s.logger.Warn("response cache read failed", zap.String("key", key), zap.Error(err))
		}
		if body != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		}

		rec := newRecorder(w)
		next(rec, r)

		if rec.status != http.StatusOK {
			return
		}
		if err := s.responseCache.Set(r.Context(), key, rec.body.Bytes(), ttl); err != nil {
			s.logger.Warn("response cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// recorder tees the response body so the middleware can store what the
// handler wrote.
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func newRecorder(w http.ResponseWriter) *recorder {
	return &recorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(p []byte) (int, error) {
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}
