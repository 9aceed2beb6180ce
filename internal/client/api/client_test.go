package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/wanderlust/internal/client/errs"
	"github.com/iudanet/wanderlust/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.BaseURL())
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/accounts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "traveler", req.Username)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.RegisterResponse{AccountID: "acc-1", Message: "created"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Register(context.Background(), api.RegisterRequest{
		Username: "traveler",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", resp.AccountID)
}

func TestClient_Token(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth2/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "cli", r.PostForm.Get("client_id"))
		assert.Equal(t, "drive.file calendar.events", r.PostForm.Get("scope"))

		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			AccessToken: "jwt", TokenType: "Bearer", Scope: "drive.file calendar.events", ExpiresIn: 3600,
		})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Token(context.Background(), "cli", "traveler", "pw", "drive.file calendar.events")
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestClient_ErrorsBecomeRemoteRequestError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "nested", status: http.StatusUnauthorized, body: `{"error":{"code":401,"message":"invalid credentials","status":"UNAUTHENTICATED"}}`, wantStatus: 401, wantMsg: "invalid credentials"},
		{name: "top level", status: http.StatusBadRequest, body: `{"message":"bad scope"}`, wantStatus: 400, wantMsg: "bad scope"},
		{name: "no body", status: http.StatusBadGateway, body: ``, wantStatus: 502, wantMsg: errs.UnknownRemoteMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Token(context.Background(), "cli", "u", "p", "s")
			require.Error(t, err)

			var re *errs.RemoteRequestError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.wantStatus, re.StatusCode)
			assert.Equal(t, tt.wantMsg, re.Message)
		})
	}
}

func TestClient_FindFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drive/v3/files", r.URL.Path)
		assert.Equal(t, "name = 'wanderlust_backup.json' and trashed = false", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(api.FileList{Files: []api.FileMetadata{{ID: "f1", Name: "wanderlust_backup.json"}}})
	}))
	defer server.Close()

	files, err := NewClient(server.URL).FindFiles(context.Background(), "tok", "wanderlust_backup.json")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "f1", files[0].ID)
}

func TestClient_CreateFileSendsMultipartRelated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload/drive/v3/files", r.URL.Path)
		assert.Equal(t, "multipart", r.URL.Query().Get("uploadType"))

		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/related", mediaType)

		mr := multipart.NewReader(r.Body, params["boundary"])

		metaPart, err := mr.NextPart()
		require.NoError(t, err)
		assert.Contains(t, metaPart.Header.Get("Content-Type"), "application/json")
		var meta api.FileMetadata
		require.NoError(t, json.NewDecoder(metaPart).Decode(&meta))
		assert.Equal(t, "wanderlust_backup.json", meta.Name)
		assert.Equal(t, "1700", meta.AppProperties[api.AppPropertyLastModified])

		contentPart, err := mr.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "application/json", contentPart.Header.Get("Content-Type"))
		content, err := io.ReadAll(contentPart)
		require.NoError(t, err)
		assert.Equal(t, `{"trips":[]}`, string(content))

		meta.ID = "new-id"
		_ = json.NewEncoder(w).Encode(meta)
	}))
	defer server.Close()

	created, err := NewClient(server.URL).CreateFile(context.Background(), "tok", api.FileMetadata{
		Name:          "wanderlust_backup.json",
		MimeType:      "application/json",
		AppProperties: map[string]string{api.AppPropertyLastModified: "1700"},
	}, []byte(`{"trips":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)
}

func TestClient_DownloadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drive/v3/files/f1", r.URL.Path)
		assert.Equal(t, "media", r.URL.Query().Get("alt"))
		_, _ = io.WriteString(w, "raw-bytes")
	}))
	defer server.Close()

	content, err := NewClient(server.URL).DownloadFile(context.Background(), "tok", "f1")
	require.NoError(t, err)
	assert.Equal(t, "raw-bytes", string(content))
}

func TestClient_InsertEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/v3/calendars/primary/events", r.URL.Path)

		var ev api.CalendarEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		assert.Equal(t, "Asia/Tokyo", ev.Start.TimeZone)
		ev.ID = "ev-1"
		_ = json.NewEncoder(w).Encode(ev)
	}))
	defer server.Close()

	got, err := NewClient(server.URL).InsertEvent(context.Background(), "tok", api.PrimaryCalendar, api.CalendarEvent{
		Summary: "x",
		Start:   api.EventDateTime{DateTime: "2024-03-01T09:00:00", TimeZone: "Asia/Tokyo"},
		End:     api.EventDateTime{DateTime: "2024-03-01T10:00:00", TimeZone: "Asia/Tokyo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ev-1", got.ID)
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).Health(context.Background())
	require.Error(t, err)

	var re *errs.RemoteRequestError
	assert.False(t, errors.As(err, &re))
}
