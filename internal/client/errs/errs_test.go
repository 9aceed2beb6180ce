package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "nested", body: `{"error":{"code":404,"message":"File not found: abc"}}`, want: "File not found: abc"},
		{name: "nested wins over top level", body: `{"error":{"message":"inner"},"message":"outer"}`, want: "inner"},
		{name: "top level", body: `{"message":"quota exceeded"}`, want: "quota exceeded"},
		{name: "string error falls back to top level", body: `{"error":"invalid_grant","message":"bad password"}`, want: "bad password"},
		{name: "nested without message", body: `{"error":{"code":500}}`, want: UnknownRemoteMessage},
		{name: "not json", body: `<html>oops</html>`, want: UnknownRemoteMessage},
		{name: "empty", body: ``, want: UnknownRemoteMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage([]byte(tt.body)))
		})
	}
}

func TestRemoteRequestError(t *testing.T) {
	err := fmt.Errorf("backup: %w", NewRemoteRequestError(http.StatusNotFound, []byte(`{"error":{"message":"gone"}}`)))

	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusForbidden))
	assert.Contains(t, err.Error(), "(404): gone")
}

func TestErrorsIs(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	initErr := error(&InitError{Err: cause})
	assert.ErrorIs(t, initErr, ErrInit)
	assert.ErrorIs(t, initErr, cause)

	authErr := error(&AuthError{Reason: "consent cancelled"})
	assert.ErrorIs(t, authErr, ErrAuth)
	assert.Equal(t, "authorization failed: consent cancelled", authErr.Error())

	timeout := error(&TimeoutError{Polls: 60, Waited: 10 * time.Minute})
	assert.ErrorIs(t, timeout, ErrTimeout)

	var te *TimeoutError
	assert.True(t, errors.As(timeout, &te))
	assert.Equal(t, 60, te.Polls)
}
