package media

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

type genaiBackend struct {
	client *genai.Client
}

// NewGenAIBackend creates a Backend over the Gemini API
func NewGenAIBackend(ctx context.Context, apiKey string) (Backend, error) {
	if apiKey == "" {
		return nil, errors.New("genai API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &genaiBackend{client: client}, nil
}

func (b *genaiBackend) GenerateContent(ctx context.Context, req ContentRequest) (*ContentResponse, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(req.Image, req.MIMEType),
		genai.NewPartFromText(req.Prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := b.client.Models.GenerateContent(ctx, req.Model, contents, nil)
	if err != nil {
		return nil, err
	}

	out := &ContentResponse{}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out, nil
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil {
			continue
		}
		part := ResponsePart{Text: p.Text}
		if p.InlineData != nil {
			part.InlineData = &InlineData{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data}
		}
		out.Parts = append(out.Parts, part)
	}
	return out, nil
}

func (b *genaiBackend) StartVideo(ctx context.Context, req VideoRequest) (*Operation, error) {
	var image *genai.Image
	if req.StartImage != nil {
		image = &genai.Image{ImageBytes: req.StartImage.Data, MIMEType: req.StartImage.MIMEType}
	}

	op, err := b.client.Models.GenerateVideos(ctx, req.Model, req.Prompt, image, &genai.GenerateVideosConfig{
		NumberOfVideos: req.NumberOfVideos,
		Resolution:     req.Resolution,
		AspectRatio:    req.AspectRatio,
	})
	if err != nil {
		return nil, err
	}
	return fromGenAIOperation(op), nil
}

func (b *genaiBackend) PollVideo(ctx context.Context, op *Operation) (*Operation, error) {
	raw, ok := op.Ref().(*genai.GenerateVideosOperation)
	if !ok {
		return nil, fmt.Errorf("operation %q was not started by genai backend", op.Name)
	}

	next, err := b.client.Operations.GetVideosOperation(ctx, raw, nil)
	if err != nil {
		return nil, err
	}
	return fromGenAIOperation(next), nil
}

func fromGenAIOperation(raw *genai.GenerateVideosOperation) *Operation {
	op := NewOperation(raw.Name, raw)
	op.Done = raw.Done

	if len(raw.Error) > 0 {
		op.Err = &OperationError{Message: fmt.Sprint(raw.Error["message"])}
		switch code := raw.Error["code"].(type) {
		case float64:
			op.Err.Code = int(code)
		case int:
			op.Err.Code = code
		case int64:
			op.Err.Code = int(code)
		}
	}

	if raw.Response != nil && len(raw.Response.GeneratedVideos) > 0 {
		if gv := raw.Response.GeneratedVideos[0]; gv != nil && gv.Video != nil {
			op.VideoURI = gv.Video.URI
		}
	}
	return op
}
