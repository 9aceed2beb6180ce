// Package errs описывает ошибки, которые клиент показывает пользователю.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInit удаленный сервис не удалось инициализировать
	ErrInit = errors.New("remote service initialization failed")

	// ErrAuth не удалось получить или подтвердить токен
	ErrAuth = errors.New("authorization failed")

	// ErrBackupNotFound в облаке нет файла бэкапа
	ErrBackupNotFound = errors.New("no backup found in cloud storage")

	// ErrTimeout ожидание удаленной операции превысило лимит
	ErrTimeout = errors.New("remote operation timed out")
)

// InitError оборачивает причину неудачной инициализации
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInit, e.Err)
}

func (e *InitError) Unwrap() []error { return []error{ErrInit, e.Err} }

// AuthError отказ в согласии, отмена или отклоненные учетные данные
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrAuth, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrAuth, e.Reason)
}

func (e *AuthError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrAuth, e.Err}
	}
	return []error{ErrAuth}
}

// UnknownRemoteMessage используется, когда тело ошибки не содержит сообщения
const UnknownRemoteMessage = "unknown remote error"

// RemoteRequestError неуспешный ответ удаленного API
type RemoteRequestError struct {
	Message    string
	StatusCode int
}

func (e *RemoteRequestError) Error() string {
	if e.StatusCode == 0 {
		return "remote request failed: " + e.Message
	}
	return fmt.Sprintf("remote request failed (%d): %s", e.StatusCode, e.Message)
}

// NewRemoteRequestError извлекает сообщение из тела ответа.
// Порядок: {"error":{"message":...}}, затем {"message":...}, затем UnknownRemoteMessage.
func NewRemoteRequestError(status int, body []byte) *RemoteRequestError {
	return &RemoteRequestError{StatusCode: status, Message: ExtractMessage(body)}
}

// ExtractMessage возвращает текст ошибки из JSON тела ответа
func ExtractMessage(body []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return UnknownRemoteMessage
	}

	if len(payload.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	if payload.Message != "" {
		return payload.Message
	}
	return UnknownRemoteMessage
}

// IsStatus reports whether err is a RemoteRequestError with the given status
func IsStatus(err error, status int) bool {
	var re *RemoteRequestError
	return errors.As(err, &re) && re.StatusCode == status
}

// TimeoutError ожидание генерации видео вышло за MaxPolls
type TimeoutError struct {
	Polls  int
	Waited time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s after %d polls (%s)", ErrTimeout, e.Polls, e.Waited)
}

func (e *TimeoutError) Unwrap() error { return ErrTimeout }
