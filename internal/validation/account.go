package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// UsernamePattern допустимый формат username аккаунта:
// латинские буквы, цифры, '_', '.', '-'; начинается с буквы или цифры
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32

	// MinPasswordLen минимальная длина пароля в символах
	MinPasswordLen = 10
	// MaxPasswordLen ограничивает работу argon2 на один запрос
	MaxPasswordLen = 128
)

// ValidateUsername проверяет username аккаунта облачного сервиса
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, '_', '.' and '-', and must start with a letter or number")
	}

	return nil
}

// ValidatePassword проверяет длину пароля аккаунта
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	n := utf8.RuneCountInString(password)
	if n < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	if n > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	return nil
}
