// Package client submits assembled listing drafts to the marketplace
// creation API.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"topcare/listingworker/internal/listing"
	"topcare/listingworker/logger"
	errs "topcare/listingworker/pkg/errors"
)

const (
	createPath      = "/api/listings/create"
	uploadImagePath = "/api/listings/upload-image"
)

// AuthContext carries the credentials attached to every API call. At least
// one of Token or Cookie must be set for submission to be attempted; the
// caller enforces that before constructing a client.
type AuthContext struct {
	Token  string
	Cookie string
}

// Empty reports whether no credential is present
func (a AuthContext) Empty() bool {
	return a.Token == "" && a.Cookie == ""
}

// CreatedListing is the record echoed back by a successful creation call
type CreatedListing struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// Client talks to the marketplace API. It performs no retries; retry
// responsibility belongs to the caller.
type Client struct {
	baseURL string
	auth    AuthContext
	client  *http.Client
	log     *logger.Logger
}

// New creates a client for the given API base URL
func New(baseURL string, auth AuthContext, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		client:  &http.Client{Timeout: timeout},
		log:     logger.ForSubmitter(),
	}
}

// HTTPClient exposes the underlying client so tests can swap its transport
func (c *Client) HTTPClient() *http.Client {
	return c.client
}

// CreateListing posts a draft to the creation endpoint and interprets the
// response into a caller-facing outcome.
func (c *Client) CreateListing(ctx context.Context, draft *listing.Draft) (*CreatedListing, error) {
	status, body, err := c.post(ctx, createPath, draft)
	if err != nil {
		return nil, errs.NewTransport(c.baseURL+createPath, "submission request failed", err)
	}

	switch status {
	case http.StatusOK:
		var envelope struct {
			Success bool            `json:"success"`
			Data    *CreatedListing `json:"data"`
		}
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr != nil || !envelope.Success || envelope.Data == nil {
			return nil, errs.NewSubmission(c.baseURL+createPath, status, truncate(string(body)))
		}
		c.log.Info().
			Int64("id", envelope.Data.ID).
			Str("title", envelope.Data.Title).
			Msg("Listing created")
		return envelope.Data, nil
	case http.StatusUnauthorized:
		return nil, errs.NewAuth(c.baseURL+createPath, "token invalid or expired")
	case http.StatusForbidden:
		return nil, errs.NewQuota(c.baseURL+createPath, serverMessage(body))
	case http.StatusBadRequest:
		return nil, errs.NewValidation(c.baseURL+createPath, serverMessage(body))
	default:
		return nil, errs.NewSubmission(c.baseURL+createPath, status, truncate(string(body)))
	}
}

// UploadImage base64-encodes the bytes and posts them to the image upload
// endpoint, returning the hosted image URL.
func (c *Client) UploadImage(ctx context.Context, data []byte, fileName string) (string, error) {
	payload := map[string]string{
		"imageData": base64.StdEncoding.EncodeToString(data),
		"fileName":  fileName,
	}

	status, body, err := c.post(ctx, uploadImagePath, payload)
	if err != nil {
		return "", errs.NewTransport(c.baseURL+uploadImagePath, "image upload request failed", err)
	}
	if status != http.StatusOK {
		return "", errs.NewSubmission(c.baseURL+uploadImagePath, status, truncate(string(body)))
	}

	var resp struct {
		ImageURL string `json:"imageUrl"`
	}
	if jsonErr := json.Unmarshal(body, &resp); jsonErr != nil || resp.ImageURL == "" {
		return "", errs.NewSubmission(c.baseURL+uploadImagePath, status, "response missing imageUrl")
	}
	return resp.ImageURL, nil
}

// UploadImageFile reads a local file and uploads it
func (c *Client) UploadImageFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image file: %w", err)
	}
	return c.UploadImage(ctx, data, filepath.Base(path))
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.auth.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.auth.Token)
	}
	if c.auth.Cookie != "" {
		req.Header.Set("Cookie", c.auth.Cookie)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// serverMessage pulls the human-readable detail out of an error response
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return truncate(string(body))
}

func truncate(s string) string {
	const limit = 200
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
