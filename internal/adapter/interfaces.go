// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a client-side abstraction over the go-bulk-notes
// REST API.
//
// The primary abstraction is [NotesClient], which decouples callers (the
// bulkctl command, integration tooling) from the HTTP transport. The package
// ships an HTTP implementation built on resty ([NewHTTPNotesClient]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
// Validation failures reported by the server as a 400 body are decoded back
// into [models.BulkValidationError] and [models.ValidationError] and attached
// to the returned error chain.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-bulk-notes/models"
)

// NotesClient defines transport-agnostic communication with the go-bulk-notes
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type NotesClient interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent requests. An empty token disables the Authorization header.
	SetToken(token string)

	// Token returns the bearer token currently stored in the client, or an
	// empty string if no token has been set yet.
	Token() string

	// List fetches the records matching filter from GET /api/notes/.
	List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)

	// Get fetches a single record by identifier from GET /api/notes/{id}.
	// Returns [ErrNotFound] (wrapped) when no such record exists.
	Get(ctx context.Context, id int64) (models.Note, error)

	// CreateMany POSTs a list payload to POST /api/notes/ and returns the
	// created records with server-assigned identifiers and timestamps.
	// Whether items carrying an existing identity update the stored record
	// is decided server-side by the bulk flags.
	CreateMany(ctx context.Context, notes []models.Note) ([]models.Note, error)

	// UpdateMany sends a bulk update payload and returns the updated
	// records. With partial set it PATCHes /api/notes/ and absent fields
	// keep their stored values; otherwise it PUTs and every mutable field
	// must be present on every item.
	UpdateMany(ctx context.Context, changes []models.NoteChange, partial bool) ([]models.Note, error)

	// DeleteMany removes the records with the given identifiers via
	// DELETE /api/notes/?idList=. Identifiers without a matching record are
	// ignored by the server.
	DeleteMany(ctx context.Context, ids []int64) error

	// Delete removes a single record via DELETE /api/notes/{id}. Returns
	// [ErrNotFound] (wrapped) when no such record exists.
	Delete(ctx context.Context, id int64) error

	// Version fetches the server version string from GET /api/version/.
	Version(ctx context.Context) (string, error)
}
