package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/wanderlust/internal/server/jwt"
	"github.com/iudanet/wanderlust/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

// claimsKey ключ для хранения claims токена в контексте
const claimsKey contextKey = "claims"

// WithClaims кладет claims проверенного токена в контекст (AuthMiddleware)
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom извлекает claims из контекста запроса
func ClaimsFrom(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}

// GetAccountID извлекает account_id из контекста запроса
func GetAccountID(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFrom(ctx)
	if !ok {
		return "", false
	}
	return claims.AccountID, claims.AccountID != ""
}

// statusNames текстовые статусы во вложенном формате ошибок
var statusNames = map[int]string{
	http.StatusBadRequest:            "INVALID_ARGUMENT",
	http.StatusUnauthorized:          "UNAUTHENTICATED",
	http.StatusForbidden:             "PERMISSION_DENIED",
	http.StatusNotFound:              "NOT_FOUND",
	http.StatusConflict:              "ALREADY_EXISTS",
	http.StatusRequestEntityTooLarge: "OUT_OF_RANGE",
	http.StatusUnsupportedMediaType:  "INVALID_ARGUMENT",
	http.StatusTooManyRequests:       "RESOURCE_EXHAUSTED",
	http.StatusInternalServerError:   "INTERNAL",
	http.StatusServiceUnavailable:    "UNAVAILABLE",
}

// SendJSON отправляет JSON ответ
func SendJSON(w http.ResponseWriter, logger *slog.Logger, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// SendError отправляет ошибку в формате {"error": {"code", "message", "status"}}
func SendError(w http.ResponseWriter, logger *slog.Logger, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error: api.ErrorBody{
			Code:    statusCode,
			Message: message,
			Status:  statusNames[statusCode],
		},
	}
	SendJSON(w, logger, resp, statusCode)
}
