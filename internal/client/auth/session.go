// Package auth управляет доступом к облачному сервису: инициализация клиента
// по discovery документу, проверка и получение access token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/wanderlust/internal/client/errs"
	"github.com/iudanet/wanderlust/internal/client/storage"
	"github.com/iudanet/wanderlust/internal/validation"
	"github.com/iudanet/wanderlust/pkg/api"
)

//go:generate moq -out remote_mock.go . Remote

// Remote часть API клиента, нужная сессии
type Remote interface {
	Discovery(ctx context.Context) (*api.DiscoveryResponse, error)
	Token(ctx context.Context, clientID, username, password, scope string) (*api.TokenResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
}

// RequiredScopes области доступа, без которых токен считается устаревшим
var RequiredScopes = []string{api.ScopeFiles, api.ScopeCalendar}

// State состояние инициализации сессии
type State int

const (
	Uninitialized State = iota
	Initializing
	Ready
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	default:
		return "uninitialized"
	}
}

// TokenStatus результат проверки закэшированного токена
type TokenStatus int

const (
	TokenMissing TokenStatus = iota
	TokenStale
	TokenValid
)

func (s TokenStatus) String() string {
	switch s {
	case TokenStale:
		return "stale"
	case TokenValid:
		return "valid"
	default:
		return "missing"
	}
}

// Session хранит состояние доступа к облаку. Создается один раз и передается
// всем, кому нужен токен; глобального состояния нет.
type Session struct {
	remote   Remote
	store    storage.AuthStorage
	prompter ConsentPrompter
	logger   *slog.Logger
	now      func() time.Time

	// acquireMu сериализует ValidateToken, чтобы не спрашивать согласие дважды
	acquireMu sync.Mutex

	mu       sync.Mutex
	state    State
	initDone chan struct{}
	initErr  error
	token    *storage.AuthData
	clientID string
}

// NewSession creates a session. clientID identifies this application to the token endpoint.
func NewSession(remote Remote, store storage.AuthStorage, prompter ConsentPrompter, clientID string, logger *slog.Logger) *Session {
	return &Session{
		remote:   remote,
		store:    store,
		prompter: prompter,
		clientID: clientID,
		logger:   logger,
		now:      time.Now,
	}
}

// State returns the current initialization state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Init loads the discovery document and checks that the files and calendar
// APIs are available. It is idempotent; after a failure the session returns
// to Uninitialized and Init may be retried.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case Ready:
		s.mu.Unlock()
		return nil
	case Initializing:
		done := s.initDone
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return &errs.InitError{Err: ctx.Err()}
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state == Ready {
			return nil
		}
		return &errs.InitError{Err: s.initErr}
	}

	s.state = Initializing
	s.initDone = make(chan struct{})
	s.mu.Unlock()

	err := s.discover(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	close(s.initDone)
	s.initErr = err
	if err != nil {
		s.state = Uninitialized
		s.logger.Warn("remote service initialization failed", "error", err)
		return &errs.InitError{Err: err}
	}
	s.state = Ready
	return nil
}

func (s *Session) discover(ctx context.Context) error {
	doc, err := s.remote.Discovery(ctx)
	if err != nil {
		return err
	}
	for _, name := range []string{api.ServiceFiles, api.ServiceCalendar} {
		if _, ok := doc.Services[name]; !ok {
			return fmt.Errorf("service %q is not offered by %s", name, doc.Name)
		}
	}
	return nil
}

// Status classifies the cached token without contacting the remote
func (s *Session) Status(ctx context.Context) (TokenStatus, error) {
	tok, err := s.cachedToken(ctx)
	if err != nil {
		return TokenMissing, err
	}
	return s.classify(tok), nil
}

func (s *Session) classify(tok *storage.AuthData) TokenStatus {
	if tok == nil || tok.AccessToken == "" {
		return TokenMissing
	}
	if tok.Expired(s.now()) {
		return TokenStale
	}
	granted := strings.Fields(tok.Scope)
	for _, scope := range RequiredScopes {
		if !containsScope(granted, scope) {
			return TokenStale
		}
	}
	return TokenValid
}

// cachedToken возвращает токен из памяти или из хранилища
func (s *Session) cachedToken(ctx context.Context) (*storage.AuthData, error) {
	s.mu.Lock()
	tok := s.token
	s.mu.Unlock()
	if tok != nil {
		return tok, nil
	}

	stored, err := s.store.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cached token: %w", err)
	}

	s.mu.Lock()
	s.token = stored
	s.mu.Unlock()
	return stored, nil
}

// ValidateToken ensures the session holds a valid token with all required
// scopes, acquiring a new one interactively when it is missing or stale.
func (s *Session) ValidateToken(ctx context.Context) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	s.acquireMu.Lock()
	defer s.acquireMu.Unlock()

	tok, err := s.cachedToken(ctx)
	if err != nil {
		// нечитаемый кэш не мешает получить новый токен
		s.logger.Warn("ignoring unreadable cached token", "error", err)
		tok = nil
	}

	status := s.classify(tok)
	if status == TokenValid {
		return nil
	}
	s.logger.Debug("acquiring access token", "status", status.String())

	return s.acquire(ctx)
}

func (s *Session) acquire(ctx context.Context) error {
	creds, err := s.prompter.Consent(ctx, RequiredScopes)
	if err != nil {
		return &errs.AuthError{Reason: "consent not granted", Err: err}
	}

	resp, err := s.remote.Token(ctx, s.clientID, creds.Username, creds.Password, strings.Join(RequiredScopes, " "))
	if err != nil {
		return &errs.AuthError{Reason: "token request rejected", Err: err}
	}

	tok := &storage.AuthData{
		Username:    creds.Username,
		AccessToken: resp.AccessToken,
		Scope:       resp.Scope,
	}
	if resp.ExpiresIn > 0 {
		tok.ExpiresAt = s.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
	}

	granted := strings.Fields(tok.Scope)
	for _, scope := range RequiredScopes {
		if !containsScope(granted, scope) {
			return &errs.AuthError{Reason: fmt.Sprintf("scope %q was not granted", scope)}
		}
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	if err := s.store.SaveAuth(ctx, tok); err != nil {
		// токен остается в памяти на время процесса
		s.logger.Warn("failed to cache access token", "error", err)
	}

	s.logger.Info("access token acquired", "username", creds.Username)
	return nil
}

// Token returns the current bearer token, "" before a successful ValidateToken
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil {
		return ""
	}
	return s.token.AccessToken
}

// Username returns the account the cached token belongs to
func (s *Session) Username(ctx context.Context) string {
	tok, err := s.cachedToken(ctx)
	if err != nil || tok == nil {
		return ""
	}
	return tok.Username
}

// Logout забывает токен в памяти и в хранилище
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = nil
	s.mu.Unlock()

	if err := s.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete cached token: %w", err)
	}
	return nil
}

// Register создает аккаунт в облачном сервисе
func (s *Session) Register(ctx context.Context, username, password string) (string, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return "", fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}
	if err := s.Init(ctx); err != nil {
		return "", err
	}

	resp, err := s.remote.Register(ctx, api.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	return resp.AccountID, nil
}

func containsScope(granted []string, scope string) bool {
	for _, g := range granted {
		if g == scope {
			return true
		}
	}
	return false
}
