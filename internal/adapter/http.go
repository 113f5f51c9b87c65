// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/models"
)

// HTTPClientConfig carries the settings of the HTTP [NotesClient]
// implementation.
type HTTPClientConfig struct {
	// BaseURL is the server address. A bare host:port is accepted and
	// normalised to an http:// URL.
	BaseURL string
	// Timeout is the per-request timeout. Zero or negative falls back to
	// 15 seconds.
	Timeout time.Duration
	// Token is an optional bearer token attached to every request. It can
	// also be set later via [NotesClient.SetToken].
	Token string
}

type httpNotesClient struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPNotesClient constructs an HTTP/REST implementation of [NotesClient].
// It normalises and validates cfg.BaseURL and configures the underlying resty
// client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPNotesClient(cfg HTTPClientConfig, log *logger.Logger) (NotesClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid client base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	c := &httpNotesClient{client: cli, logger: log}
	c.SetToken(cfg.Token)
	return c, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [NotesClient]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent requests.
func (c *httpNotesClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// Token implements [NotesClient]. It returns the bearer token currently held
// by the client, or an empty string if none has been set.
func (c *httpNotesClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// List implements [NotesClient]. It GETs /api/notes/ with the filter encoded
// as tag and done query parameters and decodes the response list.
func (c *httpNotesClient) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	req := c.authedRequest(ctx)
	if filter.Tag != "" {
		req.SetQueryParam("tag", filter.Tag)
	}
	if filter.Done != nil {
		req.SetQueryParam("done", strconv.FormatBool(*filter.Done))
	}

	resp, err := req.Get("/api/notes/")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var notes []models.Note
	if err = json.Unmarshal(resp.Body(), &notes); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return notes, nil
}

// Get implements [NotesClient]. It GETs /api/notes/{id} and decodes the
// single record. Returns [ErrNotFound] (wrapped) on HTTP 404.
func (c *httpNotesClient) Get(ctx context.Context, id int64) (models.Note, error) {
	resp, err := c.authedRequest(ctx).
		Get("/api/notes/" + strconv.FormatInt(id, 10))
	if err != nil {
		return models.Note{}, fmt.Errorf("get request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	var note models.Note
	if err = json.Unmarshal(resp.Body(), &note); err != nil {
		return models.Note{}, fmt.Errorf("decode get response: %w", err)
	}
	return note, nil
}

// CreateMany implements [NotesClient]. It POSTs the list payload to
// POST /api/notes/ and decodes the created records. A 400 caused by per-item
// validation failure carries [models.BulkValidationError] in the error chain.
func (c *httpNotesClient) CreateMany(ctx context.Context, notes []models.Note) ([]models.Note, error) {
	resp, err := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(notes).
		Post("/api/notes/")
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var created []models.Note
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}
	return created, nil
}

// UpdateMany implements [NotesClient]. It PUTs (full) or PATCHes (partial)
// the change list to /api/notes/ and decodes the updated records. A 400
// caused by per-item validation failure carries [models.BulkValidationError]
// in the error chain.
func (c *httpNotesClient) UpdateMany(ctx context.Context, changes []models.NoteChange, partial bool) ([]models.Note, error) {
	req := c.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(changes)

	var resp *resty.Response
	var err error
	if partial {
		resp, err = req.Patch("/api/notes/")
	} else {
		resp, err = req.Put("/api/notes/")
	}
	if err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var updated []models.Note
	if err = json.Unmarshal(resp.Body(), &updated); err != nil {
		return nil, fmt.Errorf("decode update response: %w", err)
	}
	return updated, nil
}

// DeleteMany implements [NotesClient]. It sends the identifiers as the idList
// query parameter of DELETE /api/notes/. Returns [ErrBadRequest] (wrapped)
// when ids is empty, matching the server's treatment of an empty idList.
func (c *httpNotesClient) DeleteMany(ctx context.Context, ids []int64) error {
	resp, err := c.authedRequest(ctx).
		SetQueryParam("idList", formatIDList(ids)).
		Delete("/api/notes/")
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

// Delete implements [NotesClient]. It sends DELETE /api/notes/{id}. Returns
// [ErrNotFound] (wrapped) on HTTP 404.
func (c *httpNotesClient) Delete(ctx context.Context, id int64) error {
	resp, err := c.authedRequest(ctx).
		Delete("/api/notes/" + strconv.FormatInt(id, 10))
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

// Version implements [NotesClient]. It GETs /api/version/ and returns the
// plain-text server version.
func (c *httpNotesClient) Version(ctx context.Context) (string, error) {
	resp, err := c.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func (c *httpNotesClient) authedRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func formatIDList(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
