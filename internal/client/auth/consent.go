package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/iudanet/wanderlust/internal/client/iocli"
)

// ErrConsentCancelled пользователь отказался предоставить доступ
var ErrConsentCancelled = errors.New("consent cancelled by user")

// Credentials учетные данные аккаунта облачного сервиса
type Credentials struct {
	Username string
	Password string
}

//go:generate moq -out consent_mock.go . ConsentPrompter

// ConsentPrompter запрашивает у пользователя согласие и учетные данные
type ConsentPrompter interface {
	Consent(ctx context.Context, scopes []string) (Credentials, error)
}

// ConsolePrompter спрашивает согласие в терминале
type ConsolePrompter struct {
	io iocli.IO
}

// NewConsolePrompter creates a prompter on top of console IO
func NewConsolePrompter(io iocli.IO) *ConsolePrompter {
	return &ConsolePrompter{io: io}
}

// Consent implements ConsentPrompter
func (p *ConsolePrompter) Consent(ctx context.Context, scopes []string) (Credentials, error) {
	p.io.Println("Wanderlust Journal requests access to your cloud account:")
	for _, scope := range scopes {
		p.io.Printf("  - %s\n", scope)
	}

	ok, err := p.io.Confirm("Allow access?")
	if err != nil {
		return Credentials{}, err
	}
	if !ok {
		return Credentials{}, ErrConsentCancelled
	}

	username, err := p.io.ReadInput("Username: ")
	if err != nil {
		return Credentials{}, err
	}
	if strings.TrimSpace(username) == "" {
		return Credentials{}, ErrConsentCancelled
	}

	password, err := p.io.ReadPassword("Password: ")
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{Username: username, Password: password}, nil
}

// StaticPrompter выдает заранее заданные учетные данные (неинтерактивный режим)
type StaticPrompter struct {
	Credentials Credentials
}

// Consent implements ConsentPrompter
func (p StaticPrompter) Consent(ctx context.Context, scopes []string) (Credentials, error) {
	if p.Credentials.Username == "" {
		return Credentials{}, ErrConsentCancelled
	}
	return p.Credentials, nil
}
