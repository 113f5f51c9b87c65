package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bulk-notes/internal/app"
	"github.com/MKhiriev/go-bulk-notes/internal/bulk"
	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/internal/store"
	"github.com/MKhiriev/go-bulk-notes/models"
)

// noteService is the core implementation of [NoteService]. It owns the hook
// firing order around persistence: per-item pre-save hooks run first, then the
// batch pre-save hook, then the store call, then the batch post-save hook and
// finally the per-item post-save hooks. Delete operations mirror the same
// order with the delete hooks.
type noteService struct {
	noteRepository store.NoteRepository
	hooks          bulk.Hooks

	logger *logger.Logger

	// now is overridable in tests.
	now func() time.Time
}

// NewNoteService constructs the core [NoteService] backed by the given
// repository. Hooks may be the zero value; every hook is optional.
func NewNoteService(noteRepository store.NoteRepository, hooks bulk.Hooks, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		hooks:          hooks,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *noteService) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	return s.noteRepository.List(ctx, filter)
}

func (s *noteService) GetNote(ctx context.Context, id int64) (models.Note, error) {
	return s.noteRepository.GetByID(ctx, id)
}

// CreateNote is the single-object degradation path of BulkCreate: same hook
// order, one record, no batch restriction.
func (s *noteService) CreateNote(ctx context.Context, note *models.Note) error {
	s.stampNew(note)

	batch := []*models.Note{note}

	if err := s.hooks.FirePreSave(ctx, batch); err != nil {
		return err
	}
	if err := s.hooks.FirePreBulkSave(ctx, batch); err != nil {
		return err
	}

	if err := s.noteRepository.Insert(ctx, note); err != nil {
		return err
	}

	s.hooks.FirePostBulkSave(ctx, batch)
	s.hooks.FirePostSave(ctx, batch, true)

	return nil
}

// BulkCreate persists the whole batch inside one transaction.
//
// Without allowUpdate every payload identity is ignored and all items are
// inserted as new records. With allowUpdate, items whose identity names a
// record inside the filtered set overwrite that record in place; every other
// item (no identity, or an identity unknown to the filtered set) is inserted
// as a new record with a database-assigned id.
func (s *noteService) BulkCreate(ctx context.Context, filter models.NoteFilter, notes []*models.Note, allowUpdate bool) error {
	log := logger.FromContext(ctx)

	if len(notes) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationNoNotesProvided)
	}

	for _, note := range notes {
		s.stampNew(note)
	}

	if err := s.hooks.FirePreSave(ctx, notes); err != nil {
		return err
	}
	if err := s.hooks.FirePreBulkSave(ctx, notes); err != nil {
		return err
	}

	if allowUpdate {
		if err := s.upsertBatch(ctx, filter, notes); err != nil {
			return err
		}
	} else {
		for _, note := range notes {
			note.ID = 0
		}
		if err := s.noteRepository.Insert(ctx, notes...); err != nil {
			return err
		}
	}

	s.hooks.FirePostBulkSave(ctx, notes)
	s.hooks.FirePostSave(ctx, notes, true)

	log.Info().
		Str("func", "noteService.BulkCreate").
		Int("count", len(notes)).
		Bool("allow_update", allowUpdate).
		Msg("bulk create finished")

	return nil
}

// upsertBatch routes each note of an allow-update batch to either an upsert
// (identity found inside the filtered set) or a plain insert.
func (s *noteService) upsertBatch(ctx context.Context, filter models.NoteFilter, notes []*models.Note) error {
	payloadIDs := make([]int64, 0, len(notes))
	for _, note := range notes {
		if note.ID > 0 {
			payloadIDs = append(payloadIDs, note.ID)
		}
	}

	existing, err := s.noteRepository.ExistingIDs(ctx, filter, payloadIDs)
	if err != nil {
		return err
	}

	existingSet := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	toUpsert := make([]*models.Note, 0, len(notes))
	toInsert := make([]*models.Note, 0, len(notes))

	for _, note := range notes {
		if _, ok := existingSet[note.ID]; note.ID > 0 && ok {
			toUpsert = append(toUpsert, note)
			continue
		}

		note.ID = 0
		toInsert = append(toInsert, note)
	}

	if len(toUpsert) > 0 {
		if upsertErr := s.noteRepository.Upsert(ctx, toUpsert); upsertErr != nil {
			return upsertErr
		}
	}
	if len(toInsert) > 0 {
		if insertErr := s.noteRepository.Insert(ctx, toInsert...); insertErr != nil {
			return insertErr
		}
	}

	return nil
}

// BulkUpdate applies the changes to records of the filtered set only.
//
// Identities unknown to that set fail validation before anything is written:
// the returned [models.BulkValidationError] is positionally aligned with the
// payload, carrying an empty map for every valid item.
func (s *noteService) BulkUpdate(ctx context.Context, filter models.NoteFilter, changes []models.NoteChange, partial bool) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationNoChangesProvided)
	}

	ids := make([]int64, 0, len(changes))
	for _, change := range changes {
		if change.ID != nil {
			ids = append(ids, *change.ID)
		}
	}

	existing, err := s.noteRepository.ExistingIDs(ctx, filter, ids)
	if err != nil {
		return nil, err
	}

	existingSet := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	if bulkErr := missingIdentityErrors(changes, existingSet); bulkErr != nil {
		return nil, bulkErr
	}

	// Apply the changes to copies of the stored records so that the hooks
	// see the post-update state before anything is persisted.
	current, err := s.noteRepository.GetByIDs(ctx, filter, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Note, len(current))
	for _, note := range current {
		byID[note.ID] = note
	}

	updated := make([]*models.Note, 0, len(changes))
	for _, change := range changes {
		note := byID[*change.ID]
		change.Apply(&note)
		note.UpdatedAt = s.now()
		updated = append(updated, &note)
	}

	if hookErr := s.hooks.FirePreSave(ctx, updated); hookErr != nil {
		return nil, hookErr
	}
	if hookErr := s.hooks.FirePreBulkSave(ctx, updated); hookErr != nil {
		return nil, hookErr
	}

	if updateErr := s.noteRepository.Update(ctx, changes); updateErr != nil {
		return nil, updateErr
	}

	s.hooks.FirePostBulkSave(ctx, updated)
	s.hooks.FirePostSave(ctx, updated, false)

	log.Info().
		Str("func", "noteService.BulkUpdate").
		Int("count", len(changes)).
		Bool("partial", partial).
		Msg("bulk update finished")

	result := make([]models.Note, 0, len(updated))
	for _, note := range updated {
		result = append(result, *note)
	}

	return result, nil
}

// missingIdentityErrors builds the positional validation error for changes
// whose identity is unknown to the filtered set. Returns nil when every
// identity resolved.
func missingIdentityErrors(changes []models.NoteChange, existingSet map[int64]struct{}) error {
	bulkErr := &models.BulkValidationError{Items: make([]models.FieldErrors, len(changes))}

	for idx, change := range changes {
		bulkErr.Items[idx] = models.FieldErrors{}

		if change.ID == nil {
			bulkErr.Items[idx]["id"] = app.MsgFieldIsRequired
			continue
		}

		if _, ok := existingSet[*change.ID]; !ok {
			bulkErr.Items[idx]["id"] = fmt.Sprintf(app.MsgNoteDoesNotExistFmt, *change.ID)
		}
	}

	if bulkErr.HasErrors() {
		return bulkErr
	}

	return nil
}

// BulkDestroy removes the intersection of ids and the filtered set.
func (s *noteService) BulkDestroy(ctx context.Context, filter models.NoteFilter, ids []int64) (int64, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, ErrValidationNoIDsProvided)
	}

	targets, err := s.noteRepository.GetByIDs(ctx, filter, ids)
	if err != nil {
		return 0, err
	}

	if len(targets) == 0 {
		return 0, nil
	}

	batch := make([]*models.Note, 0, len(targets))
	targetIDs := make([]int64, 0, len(targets))
	for idx := range targets {
		batch = append(batch, &targets[idx])
		targetIDs = append(targetIDs, targets[idx].ID)
	}

	if hookErr := s.hooks.FirePreDelete(ctx, batch); hookErr != nil {
		return 0, hookErr
	}
	if hookErr := s.hooks.FirePreBulkDelete(ctx, batch); hookErr != nil {
		return 0, hookErr
	}

	deleted, err := s.noteRepository.Delete(ctx, targetIDs)
	if err != nil {
		return 0, err
	}

	s.hooks.FirePostBulkDelete(ctx, batch)
	s.hooks.FirePostDelete(ctx, batch)

	log.Info().
		Str("func", "noteService.BulkDestroy").
		Int("requested_count", len(ids)).
		Int64("deleted_count", deleted).
		Msg("bulk destroy finished")

	return deleted, nil
}

// DeleteNote removes a single note, firing the per-item delete hooks.
func (s *noteService) DeleteNote(ctx context.Context, id int64) error {
	note, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	batch := []*models.Note{&note}

	if hookErr := s.hooks.FirePreDelete(ctx, batch); hookErr != nil {
		return hookErr
	}

	if _, deleteErr := s.noteRepository.Delete(ctx, []int64{id}); deleteErr != nil {
		return deleteErr
	}

	s.hooks.FirePostDelete(ctx, batch)

	return nil
}

// stampNew sets the bookkeeping timestamps of a to-be-created note.
func (s *noteService) stampNew(note *models.Note) {
	now := s.now()
	note.CreatedAt = now
	note.UpdatedAt = now
}
