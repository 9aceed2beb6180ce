package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/iudanet/wanderlust/pkg/api"
)

// FindFiles ищет неудаленные файлы с точным именем
func (c *Client) FindFiles(ctx context.Context, token, name string) ([]api.FileMetadata, error) {
	q := fmt.Sprintf("name = '%s' and trashed = false", strings.ReplaceAll(name, "'", `\'`))
	path := "/drive/v3/files?" + url.Values{
		"q":      {q},
		"fields": {"files(id,name,mimeType,appProperties,modifiedTime)"},
	}.Encode()

	var resp api.FileList
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, fmt.Errorf("file search failed: %w", err)
	}
	return resp.Files, nil
}

// GetFile получает метаданные файла
func (c *Client) GetFile(ctx context.Context, token, id string) (*api.FileMetadata, error) {
	var resp api.FileMetadata
	if err := c.doJSON(ctx, http.MethodGet, "/drive/v3/files/"+url.PathEscape(id), token, nil, &resp); err != nil {
		return nil, fmt.Errorf("get file failed: %w", err)
	}
	return &resp, nil
}

// DownloadFile скачивает содержимое файла
func (c *Client) DownloadFile(ctx context.Context, token, id string) ([]byte, error) {
	var content []byte
	path := "/drive/v3/files/" + url.PathEscape(id) + "?alt=media"
	if err := c.do(ctx, http.MethodGet, path, token, "", nil, &content); err != nil {
		return nil, fmt.Errorf("download file failed: %w", err)
	}
	return content, nil
}

// CreateFile загружает новый файл: метаданные и содержимое одним multipart/related запросом
func (c *Client) CreateFile(ctx context.Context, token string, meta api.FileMetadata, content []byte) (*api.FileMetadata, error) {
	var resp api.FileMetadata
	if err := c.upload(ctx, http.MethodPost, "/upload/drive/v3/files", token, meta, content, &resp); err != nil {
		return nil, fmt.Errorf("create file failed: %w", err)
	}
	return &resp, nil
}

// UpdateFile перезаписывает метаданные и содержимое существующего файла
func (c *Client) UpdateFile(ctx context.Context, token, id string, meta api.FileMetadata, content []byte) (*api.FileMetadata, error) {
	var resp api.FileMetadata
	path := "/upload/drive/v3/files/" + url.PathEscape(id)
	if err := c.upload(ctx, http.MethodPatch, path, token, meta, content, &resp); err != nil {
		return nil, fmt.Errorf("update file failed: %w", err)
	}
	return &resp, nil
}

func (c *Client) upload(ctx context.Context, method, path, token string, meta api.FileMetadata, content []byte, result any) error {
	body, contentType, err := EncodeRelated(meta, content)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path+"?uploadType=multipart", token, contentType, body, result)
}

// EncodeRelated собирает тело multipart/related: JSON метаданные, затем содержимое
func EncodeRelated(meta api.FileMetadata, content []byte) (*bytes.Buffer, string, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal file metadata: %w", err)
	}

	contentType := meta.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := mw.CreatePart(metaHeader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create metadata part: %w", err)
	}
	if _, err := part.Write(metaJSON); err != nil {
		return nil, "", fmt.Errorf("failed to write metadata part: %w", err)
	}

	contentHeader := textproto.MIMEHeader{}
	contentHeader.Set("Content-Type", contentType)
	part, err = mw.CreatePart(contentHeader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create content part: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", fmt.Errorf("failed to write content part: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	return body, "multipart/related; boundary=" + mw.Boundary(), nil
}
