package media

import "context"

// InlineData бинарные данные части ответа модели
type InlineData struct {
	MIMEType string
	Data     []byte
}

// ContentRequest запрос к модели с картинкой и текстом
type ContentRequest struct {
	Model    string
	MIMEType string
	Prompt   string
	Image    []byte
}

// ContentResponse части первого кандидата ответа
type ContentResponse struct {
	Parts []ResponsePart
}

// ResponsePart одна часть ответа; InlineData nil для текстовых частей
type ResponsePart struct {
	InlineData *InlineData
	Text       string
}

// VideoRequest запуск генерации видео
type VideoRequest struct {
	StartImage     *InlineData
	Model          string
	Prompt         string
	Resolution     string
	AspectRatio    string
	NumberOfVideos int32
}

// OperationError ошибка, которую вернула длительная операция
type OperationError struct {
	Message string
	Code    int
}

// Operation состояние длительной операции генерации видео.
// ref хранит объект бэкенда, нужный для следующего опроса.
type Operation struct {
	ref      any
	Err      *OperationError
	Name     string
	VideoURI string
	Done     bool
}

// NewOperation creates an operation carrying a backend-specific reference
func NewOperation(name string, ref any) *Operation {
	return &Operation{Name: name, ref: ref}
}

// Ref returns the backend-specific reference
func (o *Operation) Ref() any { return o.ref }

//go:generate moq -out backend_mock.go . Backend

// Backend генеративный сервис, к которому обращается Service
type Backend interface {
	// GenerateContent отправляет картинку и текст, возвращает части первого кандидата
	GenerateContent(ctx context.Context, req ContentRequest) (*ContentResponse, error)

	// StartVideo запускает генерацию видео
	StartVideo(ctx context.Context, req VideoRequest) (*Operation, error)

	// PollVideo запрашивает текущее состояние операции
	PollVideo(ctx context.Context, op *Operation) (*Operation, error)
}
