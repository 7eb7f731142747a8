package server

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxLoggedBody = 2048

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware tags each request with an id and logs the request and
// its response status and duration.
func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)
			log := logger.With(zap.String("request_id", id))

			if r.Body != nil && log.Core().Enabled(zap.DebugLevel) {
				body, _ := io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewReader(body))
				logged := body
				if len(logged) > maxLoggedBody {
					logged = logged[:maxLoggedBody]
				}
				log.Debug("request body", zap.ByteString("body", logged))
			}
			log.Info("REQ", zap.String("method", r.Method), zap.String("path", r.URL.Path))

			wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapper, r)

			log.Info("RES",
				zap.Int("status", wrapper.statusCode),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
