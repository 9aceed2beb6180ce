package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iudanet/wanderlust/internal/server/handlers"
)

// RecoveryMiddleware перехватывает panic, логирует стек и отвечает 500
// во вложенном формате ошибок. Если заголовки уже ушли клиенту, ответ
// не трогаем: только лог.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := wrapResponseWriter(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("request_id", chimw.GetReqID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Bool("headers_sent", wrapped.wroteHeader),
					slog.String("stack", string(debug.Stack())),
				)

				if !wrapped.wroteHeader {
					handlers.SendError(wrapped, logger, "internal server error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}
