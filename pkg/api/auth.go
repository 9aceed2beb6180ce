package api

// Области доступа токена
const (
	ScopeFiles    = "drive.file"
	ScopeCalendar = "calendar.events"
)

// RegisterRequest представляет запрос на регистрацию аккаунта
type RegisterRequest struct {
	Username string `json:"username"` // username аккаунта
	Password string `json:"password"` // пароль в открытом виде, хранится только argon2id хеш
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	AccountID string `json:"account_id"` // UUID аккаунта
	Message   string `json:"message"`    // сообщение об успешной регистрации
}

// TokenResponse ответ token endpoint (RFC 6749, password grant)
type TokenResponse struct {
	AccessToken string `json:"access_token"` // JWT access token
	TokenType   string `json:"token_type"`   // всегда "Bearer"
	Scope       string `json:"scope"`        // выданные области через пробел
	ExpiresIn   int64  `json:"expires_in"`   // время жизни в секундах
}

// HealthResponse ответ проверки здоровья сервиса
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ServiceInfo описание одного API в discovery документе
type ServiceInfo struct {
	BasePath string `json:"base_path"`
	Scope    string `json:"scope"`
}

// DiscoveryResponse перечисляет доступные API сервиса
type DiscoveryResponse struct {
	Services map[string]ServiceInfo `json:"services"`
	Name     string                 `json:"name"`
	Version  string                 `json:"version"`
}

// Имена сервисов в discovery документе
const (
	ServiceFiles    = "files"
	ServiceCalendar = "calendar"
)

// ErrorBody тело ошибки во вложенном формате {"error": {...}}
type ErrorBody struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
	Code    int    `json:"code"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
