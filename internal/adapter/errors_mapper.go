// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-bulk-notes/models"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx resty response into an error chain rooted
// at one of the sentinel values from errors.go. A 400 body is additionally
// decoded into the validation error types the server renders, so callers can
// recover per-item field errors with [errors.As].
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		if vErr := decodeValidationBody(body); vErr != nil {
			return fmt.Errorf("%w: %w", ErrBadRequest, vErr)
		}
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// decodeValidationBody recovers the structured validation error the server
// wrote into a 400 body: a JSON list of per-item field-error objects for list
// payloads, or a single field-error object for object payloads. Returns nil
// when the body is not one of those shapes.
func decodeValidationBody(body string) error {
	switch {
	case strings.HasPrefix(body, "["):
		var items []models.FieldErrors
		if err := json.Unmarshal([]byte(body), &items); err != nil {
			return nil
		}
		return &models.BulkValidationError{Items: items}
	case strings.HasPrefix(body, "{"):
		var fields models.FieldErrors
		if err := json.Unmarshal([]byte(body), &fields); err != nil {
			return nil
		}
		return &models.ValidationError{Fields: fields}
	default:
		return nil
	}
}
