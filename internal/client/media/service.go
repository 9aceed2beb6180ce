package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/iudanet/wanderlust/internal/client/errs"
)

const (
	ImageModel = "gemini-2.5-flash-image"
	VideoModel = "veo-3.1-fast-generate-preview"

	// DefaultVlogPrompt используется, когда пользователь не ввел описание
	DefaultVlogPrompt = "A beautiful cinematic travel montage vlog of a vacation"

	DefaultPollInterval = 10 * time.Second
	DefaultMaxPolls     = 60

	pngMIME = "image/png"
)

// ErrNoParts ответ модели без частей
var ErrNoParts = errors.New("no parts in response")

var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// Image картинка, которую вернула модель
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURI returns the image as a data:image/png;base64 URI
func (i *Image) DataURI() string {
	return "data:" + pngMIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// VideoHandle ссылка на готовое видео
type VideoHandle struct {
	URI string
}

// PollOptions ограничивает ожидание генерации видео
type PollOptions struct {
	Interval time.Duration
	MaxPolls int
}

func (o PollOptions) withDefaults() PollOptions {
	if o.Interval <= 0 {
		o.Interval = DefaultPollInterval
	}
	if o.MaxPolls <= 0 {
		o.MaxPolls = DefaultMaxPolls
	}
	return o
}

// Service AI-редактирование фото и генерация видео
type Service struct {
	backend    Backend
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
}

// NewService creates a new media service
func NewService(backend Backend, apiKey string, logger *slog.Logger) *Service {
	return &Service{
		backend:    backend,
		apiKey:     apiKey,
		logger:     logger,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// DecodeImage принимает data URI или голый base64
func DecodeImage(encoded string) ([]byte, error) {
	raw := dataURIPrefix.ReplaceAllString(encoded, "")
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	return data, nil
}

// EditImage отправляет картинку и инструкцию модели.
// (nil, nil) означает, что модель не вернула картинку.
func (s *Service) EditImage(ctx context.Context, image, prompt string) (*Image, error) {
	data, err := DecodeImage(image)
	if err != nil {
		return nil, err
	}

	resp, err := s.backend.GenerateContent(ctx, ContentRequest{
		Model:    ImageModel,
		Image:    data,
		MIMEType: pngMIME,
		Prompt:   prompt,
	})
	if err != nil {
		s.logger.Error("image edit failed", "error", err)
		return nil, fmt.Errorf("image edit failed: %w", err)
	}
	if resp == nil || len(resp.Parts) == 0 {
		return nil, ErrNoParts
	}

	for _, part := range resp.Parts {
		if part.InlineData != nil {
			return &Image{MIMEType: pngMIME, Data: part.InlineData.Data}, nil
		}
	}

	s.logger.Info("image edit produced no image", "parts", len(resp.Parts))
	return nil, nil
}

// GenerateVlog запускает генерацию видео и ждет ее завершения.
// Ожидание ограничено opts.MaxPolls и ctx; удаленная задача при этом не отменяется.
// (nil, nil) означает, что задача завершилась без видео.
func (s *Service) GenerateVlog(ctx context.Context, prompt string, startImage string, opts PollOptions) (*VideoHandle, error) {
	opts = opts.withDefaults()
	if prompt == "" {
		prompt = DefaultVlogPrompt
	}

	req := VideoRequest{
		Model:          VideoModel,
		Prompt:         prompt,
		NumberOfVideos: 1,
		Resolution:     "720p",
		AspectRatio:    "16:9",
	}
	if startImage != "" {
		data, err := DecodeImage(startImage)
		if err != nil {
			return nil, err
		}
		req.StartImage = &InlineData{MIMEType: pngMIME, Data: data}
	}

	op, err := s.backend.StartVideo(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("video generation failed to start: %w", err)
	}
	s.logger.Info("video generation started", "operation", op.Name)

	started := time.Now()
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for polls := 0; !op.Done; {
		if polls >= opts.MaxPolls {
			s.logger.Warn("video generation wait abandoned", "operation", op.Name, "polls", polls)
			return nil, &errs.TimeoutError{Polls: polls, Waited: time.Since(started)}
		}

		select {
		case <-ctx.Done():
			s.logger.Warn("video generation wait cancelled", "operation", op.Name, "polls", polls)
			return nil, ctx.Err()
		case <-ticker.C:
		}

		polls++
		op, err = s.backend.PollVideo(ctx, op)
		if err != nil {
			return nil, fmt.Errorf("video generation poll failed: %w", err)
		}
		s.logger.Debug("video generation polled", "operation", op.Name, "polls", polls, "done", op.Done)
	}

	if op.Err != nil {
		return nil, &errs.RemoteRequestError{StatusCode: op.Err.Code, Message: op.Err.Message}
	}
	if op.VideoURI == "" {
		s.logger.Info("video generation finished without output", "operation", op.Name)
		return nil, nil
	}

	return &VideoHandle{URI: op.VideoURI}, nil
}

// Download скачивает видео в w; к ссылке добавляется key=<API key>
func (s *Service) Download(ctx context.Context, handle *VideoHandle, w io.Writer) (int64, error) {
	u, err := url.Parse(handle.URI)
	if err != nil {
		return 0, fmt.Errorf("invalid video uri: %w", err)
	}
	q := u.Query()
	q.Set("key", s.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("video download failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Warn("failed to close response body", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return 0, errs.NewRemoteRequestError(resp.StatusCode, body)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("video download interrupted: %w", err)
	}
	return n, nil
}
