package jwt

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Issuer значение iss в выдаваемых токенах
const Issuer = "wanderlust"

// ErrInvalidToken токен не прошел проверку подписи, срока или формата
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims
type Claims struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	ClientID  string `json:"client_id,omitempty"`
	Scope     string `json:"scope"` // области через пробел, как в OAuth2
	gojwt.RegisteredClaims
}

// Scopes возвращает области токена списком
func (c *Claims) Scopes() []string {
	return strings.Fields(c.Scope)
}

// HasScope проверяет, что токен выдан с областью scope
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes(), scope)
}

// Service provides JWT token generation and validation
type Service struct {
	now            func() time.Time
	secret         []byte
	accessTokenTTL time.Duration
}

// NewService creates a new JWT service
// secret should be a cryptographically secure random string
func NewService(secret []byte, accessTokenTTL time.Duration) *Service {
	return &Service{
		secret:         secret,
		accessTokenTTL: accessTokenTTL,
		now:            time.Now,
	}
}

// GenerateAccessToken создает JWT access token; возвращает токен и время жизни в секундах
func (s *Service) GenerateAccessToken(accountID, username, clientID string, scopes []string) (string, int64, error) {
	now := s.now()

	claims := Claims{
		AccountID: accountID,
		Username:  username,
		ClientID:  clientID,
		Scope:     strings.Join(scopes, " "),
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int64(s.accessTokenTTL.Seconds()), nil
}

// ValidateAccessToken валидирует и парсит JWT access token
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := gojwt.ParseWithClaims(tokenString, &Claims{}, func(token *gojwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		gojwt.WithIssuer(Issuer),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
