package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iudanet/wanderlust/internal/client/errs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestService(backend Backend) *Service {
	return NewService(backend, "secret-key", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var fastPoll = PollOptions{Interval: time.Millisecond, MaxPolls: 5}

func TestDecodeImage(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G'}
	enc := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "png data uri", input: "data:image/png;base64," + enc},
		{name: "jpeg data uri", input: "data:image/jpeg;base64," + enc},
		{name: "bare base64", input: enc},
		{name: "garbage", input: "data:image/png;base64,@@@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeImage(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, raw, got)
		})
	}
}

func TestEditImage(t *testing.T) {
	input := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("in"))

	t.Run("returns first inline image", func(t *testing.T) {
		backend := &BackendMock{
			GenerateContentFunc: func(ctx context.Context, req ContentRequest) (*ContentResponse, error) {
				return &ContentResponse{Parts: []ResponsePart{
					{Text: "here you go"},
					{InlineData: &InlineData{MIMEType: "image/png", Data: []byte("out")}},
					{InlineData: &InlineData{MIMEType: "image/png", Data: []byte("second")}},
				}}, nil
			},
		}

		img, err := newTestService(backend).EditImage(context.Background(), input, "add a sunset")
		require.NoError(t, err)
		require.NotNil(t, img)
		assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("out")), img.DataURI())

		calls := backend.GenerateContentCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, ImageModel, calls[0].Req.Model)
		assert.Equal(t, "image/png", calls[0].Req.MIMEType)
		assert.Equal(t, []byte("in"), calls[0].Req.Image)
		assert.Equal(t, "add a sunset", calls[0].Req.Prompt)
	})

	t.Run("text only response is not an error", func(t *testing.T) {
		backend := &BackendMock{
			GenerateContentFunc: func(ctx context.Context, req ContentRequest) (*ContentResponse, error) {
				return &ContentResponse{Parts: []ResponsePart{{Text: "cannot edit"}}}, nil
			},
		}

		img, err := newTestService(backend).EditImage(context.Background(), input, "x")
		assert.NoError(t, err)
		assert.Nil(t, img)
	})

	t.Run("no parts", func(t *testing.T) {
		backend := &BackendMock{
			GenerateContentFunc: func(ctx context.Context, req ContentRequest) (*ContentResponse, error) {
				return &ContentResponse{}, nil
			},
		}

		_, err := newTestService(backend).EditImage(context.Background(), input, "x")
		assert.ErrorIs(t, err, ErrNoParts)
	})

	t.Run("backend error", func(t *testing.T) {
		backend := &BackendMock{
			GenerateContentFunc: func(ctx context.Context, req ContentRequest) (*ContentResponse, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		_, err := newTestService(backend).EditImage(context.Background(), input, "x")
		assert.ErrorContains(t, err, "quota exceeded")
	})
}

func TestGenerateVlog_PollsUntilDone(t *testing.T) {
	polls := 0
	backend := &BackendMock{
		StartVideoFunc: func(ctx context.Context, req VideoRequest) (*Operation, error) {
			return NewOperation("operations/1", nil), nil
		},
		PollVideoFunc: func(ctx context.Context, op *Operation) (*Operation, error) {
			polls++
			next := NewOperation(op.Name, nil)
			if polls == 3 {
				next.Done = true
				next.VideoURI = "https://media.example.com/v.mp4?alt=media"
			}
			return next, nil
		},
	}

	handle, err := newTestService(backend).GenerateVlog(context.Background(), "", "", fastPoll)
	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.Equal(t, "https://media.example.com/v.mp4?alt=media", handle.URI)
	assert.Len(t, backend.PollVideoCalls(), 3)

	req := backend.StartVideoCalls()[0].Req
	assert.Equal(t, DefaultVlogPrompt, req.Prompt)
	assert.Equal(t, VideoModel, req.Model)
	assert.Equal(t, int32(1), req.NumberOfVideos)
	assert.Equal(t, "720p", req.Resolution)
	assert.Equal(t, "16:9", req.AspectRatio)
	assert.Nil(t, req.StartImage)
}

func TestGenerateVlog_StartImage(t *testing.T) {
	backend := &BackendMock{
		StartVideoFunc: func(ctx context.Context, req VideoRequest) (*Operation, error) {
			op := NewOperation("operations/2", nil)
			op.Done = true
			return op, nil
		},
	}

	start := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("frame"))
	handle, err := newTestService(backend).GenerateVlog(context.Background(), "Lisbon trams", start, fastPoll)
	require.NoError(t, err)
	assert.Nil(t, handle, "done without video resolves to nil")

	req := backend.StartVideoCalls()[0].Req
	assert.Equal(t, "Lisbon trams", req.Prompt)
	require.NotNil(t, req.StartImage)
	assert.Equal(t, []byte("frame"), req.StartImage.Data)
}

func TestGenerateVlog_StopsAtMaxPolls(t *testing.T) {
	backend := &BackendMock{
		StartVideoFunc: func(ctx context.Context, req VideoRequest) (*Operation, error) {
			return NewOperation("operations/slow", nil), nil
		},
		PollVideoFunc: func(ctx context.Context, op *Operation) (*Operation, error) {
			return NewOperation(op.Name, nil), nil
		},
	}

	_, err := newTestService(backend).GenerateVlog(context.Background(), "x", "", fastPoll)

	var timeout *errs.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.ErrorIs(t, err, errs.ErrTimeout)
	assert.Equal(t, fastPoll.MaxPolls, timeout.Polls)
	assert.Len(t, backend.PollVideoCalls(), fastPoll.MaxPolls)
}

func TestGenerateVlog_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backend := &BackendMock{
		StartVideoFunc: func(ctx context.Context, req VideoRequest) (*Operation, error) {
			cancel()
			return NewOperation("operations/abandoned", nil), nil
		},
	}

	_, err := newTestService(backend).GenerateVlog(ctx, "x", "", PollOptions{Interval: time.Hour, MaxPolls: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, backend.PollVideoCalls())
}

func TestGenerateVlog_OperationError(t *testing.T) {
	backend := &BackendMock{
		StartVideoFunc: func(ctx context.Context, req VideoRequest) (*Operation, error) {
			op := NewOperation("operations/bad", nil)
			op.Done = true
			op.Err = &OperationError{Code: 400, Message: "prompt rejected"}
			return op, nil
		},
	}

	_, err := newTestService(backend).GenerateVlog(context.Background(), "x", "", fastPoll)

	var remote *errs.RemoteRequestError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, 400, remote.StatusCode)
	assert.Equal(t, "prompt rejected", remote.Message)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "secret-key" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key missing"}}`))
			return
		}
		assert.Equal(t, "media", r.URL.Query().Get("alt"))
		_, _ = w.Write([]byte("mp4-bytes"))
	}))
	defer srv.Close()

	svc := newTestService(&BackendMock{})
	defer svc.httpClient.CloseIdleConnections()

	var buf bytes.Buffer
	n, err := svc.Download(context.Background(), &VideoHandle{URI: srv.URL + "/files/v1?alt=media"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "mp4-bytes", buf.String())

	svc.apiKey = "wrong"
	_, err = svc.Download(context.Background(), &VideoHandle{URI: srv.URL + "/files/v1?alt=media"}, &buf)
	assert.True(t, errs.IsStatus(err, http.StatusForbidden))
	assert.ErrorContains(t, err, "API key missing")
}
