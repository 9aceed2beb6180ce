package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/wanderlust/internal/server/handlers"
	"github.com/iudanet/wanderlust/internal/server/jwt"
)

// TokenValidator проверяет access token (jwt.Service)
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware создает middleware для проверки JWT токена.
// Токен должен содержать область scope, иначе 403.
func AuthMiddleware(logger *slog.Logger, validator TokenValidator, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(r.Context(), "missing Authorization header", slog.String("path", r.URL.Path))
				unauthorized(w, logger, "missing access token")
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				logger.WarnContext(r.Context(), "invalid Authorization header format")
				unauthorized(w, logger, "invalid token format")
				return
			}

			claims, err := validator.ValidateAccessToken(parts[1])
			if err != nil {
				logger.WarnContext(r.Context(), "invalid access token", slog.Any("error", err))
				unauthorized(w, logger, "invalid or expired access token")
				return
			}

			if !claims.HasScope(scope) {
				logger.WarnContext(r.Context(), "token lacks scope",
					slog.String("account_id", claims.AccountID),
					slog.String("scope", scope))
				w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+scope+`"`)
				handlers.SendError(w, logger, "access token lacks scope "+scope, http.StatusForbidden)
				return
			}

			logger.DebugContext(r.Context(), "account authenticated",
				slog.String("account_id", claims.AccountID),
				slog.String("client_id", claims.ClientID))

			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, logger *slog.Logger, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	handlers.SendError(w, logger, message, http.StatusUnauthorized)
}
