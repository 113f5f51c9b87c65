package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bulk-notes/internal/validators"
	"github.com/MKhiriev/go-bulk-notes/models"
)

// NoteValidationService decorates a [NoteService] with payload validation.
// Every mutating call validates the complete payload before delegating, so
// persistence never starts on a partially valid batch.
type NoteValidationService struct {
	inner     NoteService
	validator validators.NoteValidator
}

// NewNoteValidationService constructs the validation decorator. Compose it
// around the core service via [NoteValidationService.Wrap].
func NewNoteValidationService() NoteServiceWrapper {
	return &NoteValidationService{
		validator: validators.NewNoteValidator(),
	}
}

func (v *NoteValidationService) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	return v.inner.ListNotes(ctx, filter)
}

func (v *NoteValidationService) GetNote(ctx context.Context, id int64) (models.Note, error) {
	return v.inner.GetNote(ctx, id)
}

func (v *NoteValidationService) CreateNote(ctx context.Context, note *models.Note) error {
	if fields := v.validator.ValidateNote(ctx, *note); len(fields) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, &models.ValidationError{Fields: fields})
	}

	return v.inner.CreateNote(ctx, note)
}

func (v *NoteValidationService) BulkCreate(ctx context.Context, filter models.NoteFilter, notes []*models.Note, allowUpdate bool) error {
	if len(notes) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationNoNotesProvided)
	}

	if bulkErr := v.validator.ValidateNotes(ctx, notes); bulkErr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, bulkErr)
	}

	return v.inner.BulkCreate(ctx, filter, notes, allowUpdate)
}

func (v *NoteValidationService) BulkUpdate(ctx context.Context, filter models.NoteFilter, changes []models.NoteChange, partial bool) ([]models.Note, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationNoChangesProvided)
	}

	if bulkErr := v.validator.ValidateChanges(ctx, changes, partial); bulkErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, bulkErr)
	}

	return v.inner.BulkUpdate(ctx, filter, changes, partial)
}

func (v *NoteValidationService) BulkDestroy(ctx context.Context, filter models.NoteFilter, ids []int64) (int64, error) {
	return v.inner.BulkDestroy(ctx, filter, ids)
}

func (v *NoteValidationService) DeleteNote(ctx context.Context, id int64) error {
	return v.inner.DeleteNote(ctx, id)
}

// Wrap composes the decorator around inner and returns the decorated service.
func (v *NoteValidationService) Wrap(inner NoteService) NoteService {
	v.inner = inner
	return v
}
