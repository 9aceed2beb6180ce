package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/wanderlust/internal/client/errs"
	"github.com/iudanet/wanderlust/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с облачным сервисом
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health проверяет доступность сервиса
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/health", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// Discovery получает список API, которые предоставляет сервис
func (c *Client) Discovery(ctx context.Context) (*api.DiscoveryResponse, error) {
	var resp api.DiscoveryResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/discovery", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("discovery request failed: %w", err)
	}
	return &resp, nil
}

// Register регистрирует новый аккаунт
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/accounts", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Token получает access token по паролю аккаунта (password grant)
func (c *Client) Token(ctx context.Context, clientID, username, password, scope string) (*api.TokenResponse, error) {
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {clientID},
		"username":   {username},
		"password":   {password},
		"scope":      {scope},
	}

	var resp api.TokenResponse
	err := c.do(ctx, http.MethodPost, "/oauth2/token", "",
		"application/x-www-form-urlencoded", bytes.NewBufferString(form.Encode()), &resp)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	return &resp, nil
}

// doJSON выполняет запрос с JSON телом
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, result any) error {
	var (
		bodyReader  io.Reader
		contentType string
	)
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, token, contentType, bodyReader, result)
}

// do выполняет HTTP запрос. result может быть *[]byte для сырого тела или nil.
// Неуспешный статус возвращается как *errs.RemoteRequestError.
func (c *Client) do(ctx context.Context, method, path, token, contentType string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.NewRemoteRequestError(resp.StatusCode, respBody)
	}

	switch r := result.(type) {
	case nil:
	case *[]byte:
		*r = respBody
	default:
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
