package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/wanderlust/internal/crypto"
	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/internal/server/storage"
	"github.com/iudanet/wanderlust/internal/validation"
	"github.com/iudanet/wanderlust/pkg/api"
)

// KnownScopes области, которые сервис умеет выдавать
var KnownScopes = []string{api.ScopeFiles, api.ScopeCalendar}

// TokenIssuer выпускает access token (jwt.Service)
type TokenIssuer interface {
	GenerateAccessToken(accountID, username, clientID string, scopes []string) (string, int64, error)
}

// Recorder доменные метрики сервиса
type Recorder interface {
	RecordRegistration()
	RecordTokenIssued(clientID string)
	RecordUpload(bytes int)
	RecordEventCreated()
}

// AuthHandler обрабатывает регистрацию аккаунтов и выдачу токенов
type AuthHandler struct {
	logger   *slog.Logger
	accounts storage.AccountStorage
	tokens   TokenIssuer
	metrics  Recorder
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, accounts storage.AccountStorage, tokens TokenIssuer, metrics Recorder) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		accounts: accounts,
		tokens:   tokens,
		metrics:  metrics,
	}
}

// Register обрабатывает POST /api/v1/accounts
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		SendError(w, h.logger, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		SendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		SendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		SendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := h.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			h.logger.WarnContext(ctx, "account already exists", slog.String("username", req.Username))
			SendError(w, h.logger, "username already taken", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create account", slog.Any("error", err))
		SendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordRegistration()
	h.logger.InfoContext(ctx, "account registered",
		slog.String("username", req.Username),
		slog.String("account_id", account.ID))

	SendJSON(w, h.logger, api.RegisterResponse{
		AccountID: account.ID,
		Message:   "Account registered successfully",
	}, http.StatusCreated)
}

// Token обрабатывает POST /oauth2/token (password grant, form-encoded)
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		SendError(w, h.logger, "invalid form body", http.StatusBadRequest)
		return
	}

	if grant := r.PostForm.Get("grant_type"); grant != "password" {
		SendError(w, h.logger, "unsupported grant_type: "+grant, http.StatusBadRequest)
		return
	}

	clientID := r.PostForm.Get("client_id")
	if clientID == "" {
		SendError(w, h.logger, "client_id is required", http.StatusBadRequest)
		return
	}

	scopes, err := parseScopes(r.PostForm.Get("scope"))
	if err != nil {
		SendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		SendError(w, h.logger, "username and password are required", http.StatusBadRequest)
		return
	}

	account, err := h.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			h.logger.WarnContext(ctx, "token denied: account not found", slog.String("username", username))
			SendError(w, h.logger, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get account", slog.Any("error", err))
		SendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := crypto.VerifyPassword(password, account.PasswordHash); err != nil {
		if !errors.Is(err, crypto.ErrPasswordMismatch) {
			h.logger.ErrorContext(ctx, "stored password hash is unreadable",
				slog.String("account_id", account.ID), slog.Any("error", err))
		}
		h.logger.WarnContext(ctx, "token denied: wrong password", slog.String("username", username))
		SendError(w, h.logger, "invalid credentials", http.StatusUnauthorized)
		return
	}

	accessToken, expiresIn, err := h.tokens.GenerateAccessToken(account.ID, account.Username, clientID, scopes)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		SendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.accounts.UpdateLastLogin(ctx, account.ID, time.Now()); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.metrics.RecordTokenIssued(clientID)
	h.logger.InfoContext(ctx, "access token issued",
		slog.String("account_id", account.ID),
		slog.String("client_id", clientID),
		slog.String("scope", strings.Join(scopes, " ")))

	SendJSON(w, h.logger, api.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		Scope:       strings.Join(scopes, " "),
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}

// parseScopes разбирает scope через пробел; пустой запрос получает все известные области
func parseScopes(raw string) ([]string, error) {
	requested := strings.Fields(raw)
	if len(requested) == 0 {
		return slices.Clone(KnownScopes), nil
	}

	scopes := make([]string, 0, len(requested))
	for _, s := range requested {
		if !slices.Contains(KnownScopes, s) {
			return nil, errors.New("unknown scope: " + s)
		}
		if !slices.Contains(scopes, s) {
			scopes = append(scopes, s)
		}
	}
	return scopes, nil
}
