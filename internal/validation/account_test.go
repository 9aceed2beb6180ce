package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
		wantErr  bool
	}{
		{name: "lowercase", username: "alice"},
		{name: "mixed case", username: "AliceSmith"},
		{name: "dot and dash", username: "alice.smith-2"},
		{name: "digits only", username: "123456"},
		{name: "max length", username: strings.Repeat("a", 32)},
		{name: "empty", username: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too short", username: "ab", wantErr: true, errMsg: "at least 3 characters"},
		{name: "too long", username: strings.Repeat("a", 33), wantErr: true, errMsg: "must not exceed 32"},
		{name: "leading dot", username: ".alice", wantErr: true, errMsg: "can only contain"},
		{name: "space", username: "alice smith", wantErr: true, errMsg: "can only contain"},
		{name: "at sign", username: "alice@mail", wantErr: true, errMsg: "can only contain"},
		{name: "cyrillic", username: "алиса", wantErr: true, errMsg: "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
		wantErr  bool
	}{
		{name: "ten ascii", password: "0123456789"},
		{name: "unicode counted by runes", password: "пароль1234"},
		{name: "empty", password: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "nine", password: "012345678", wantErr: true, errMsg: "at least 10"},
		{name: "too long", password: strings.Repeat("x", 129), wantErr: true, errMsg: "must not exceed 128"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
