package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RequestObserver принимает сведения о завершенном запросе (metrics.Collector)
type RequestObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// MetricsMiddleware считает запросы по шаблону маршрута chi
// (/drive/v3/files/{fileID}), а не по сырому пути
func MetricsMiddleware(observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			observer.ObserveRequest(r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}
