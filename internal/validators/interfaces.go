// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for the note domain models.
//
// Validation results are expressed as [models.FieldErrors] mappings (payload
// field name to message) so the HTTP layer can return them verbatim as the
// body of a 400 response. List payloads produce a
// [models.BulkValidationError] whose entries are positionally aligned with
// the payload items.
//
// This package decouples validation logic from transport layers and storage,
// enabling reusable, composable, and testable validation strategies.
package validators

import (
	"context"

	"github.com/MKhiriev/go-bulk-notes/models"
)

// NoteValidator validates notes and note changes before persistence.
//
// Methods return nil when the input is valid; otherwise they return the
// field-level error mapping(s) describing every violation found.
type NoteValidator interface {
	// ValidateNote checks a single note payload item.
	ValidateNote(ctx context.Context, note models.Note) models.FieldErrors

	// ValidateNotes checks every item of a list payload. The returned
	// error's Items slice has one entry per input note, empty maps marking
	// valid items.
	ValidateNotes(ctx context.Context, notes []*models.Note) *models.BulkValidationError

	// ValidateChange checks a single update descriptor. When partial is
	// false every mutable field must be present.
	ValidateChange(ctx context.Context, change models.NoteChange, partial bool) models.FieldErrors

	// ValidateChanges checks every item of a bulk update payload,
	// positionally aligned like ValidateNotes.
	ValidateChanges(ctx context.Context, changes []models.NoteChange, partial bool) *models.BulkValidationError
}
