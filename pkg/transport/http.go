// Package transport moves file bytes to a remote store. The HTTP client
// targets a CAS-style multipart upload endpoint and returns the content hash
// as the remote identifier.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"filedrop/pkg/ingest"
	"filedrop/pkg/log"
)

const defaultTimeout = 2 * time.Minute

// RequestError is returned when the remote endpoint answers with a non-2xx
// status.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e RequestError) Error() string {
	return fmt.Sprintf("upload returned status %d: %s", e.StatusCode, e.Body)
}

type uploadResponse struct {
	Hash string `json:"hash"`
}

// Client uploads files to a remote CAS endpoint over HTTP.
type Client struct {
	baseURL string
	client  *retryablehttp.Client
	logger  zerolog.Logger
}

// New creates an upload client for the given base URL. A non-positive timeout
// falls back to the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = timeout
	client.Logger = nil

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  log.Component("transport"),
	}
}

// UploadOne posts the file as multipart form data and returns the remote
// identifier. The file's content handle is consumed and closed regardless of
// outcome.
func (c *Client) UploadOne(ctx context.Context, file ingest.FileHandle) (string, error) {
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.Warn().Err(err).Str("file", file.Name).Msg("Failed to close file content")
		}
	}()

	// Buffer the body so the client can replay it on retry.
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return "", fmt.Errorf("read file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/file/upload", body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn().Err(closeErr).Msg("Failed to close response body")
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", RequestError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var uploadResp uploadResponse
	if err := json.Unmarshal(respBody, &uploadResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if uploadResp.Hash == "" {
		return "", errors.New("upload response missing hash")
	}

	c.logger.Debug().Str("file", file.Name).Str("hash", uploadResp.Hash).Msg("File uploaded")
	return uploadResp.Hash, nil
}
