package service

import (
	"context"

	"github.com/MKhiriev/go-bulk-notes/models"
)

// NoteService is the application-level contract of the note resource.
// Bulk methods implement the list-shaped operation semantics: validation of
// the whole payload happens before any record is persisted, and every
// persistence call is restricted to the caller's filtered record set.
type NoteService interface {
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	GetNote(ctx context.Context, id int64) (models.Note, error)

	// CreateNote persists a single new note and populates its ID.
	CreateNote(ctx context.Context, note *models.Note) error

	// BulkCreate persists a batch of new notes. With allowUpdate enabled,
	// payload items carrying the identity of a record inside the filtered
	// set overwrite that record instead of inserting.
	BulkCreate(ctx context.Context, filter models.NoteFilter, notes []*models.Note, allowUpdate bool) error

	// BulkUpdate applies a batch of changes to records of the filtered set.
	// Changes whose identity matches nothing in that set fail validation;
	// nothing is ever inserted. Returns the updated records in payload order.
	BulkUpdate(ctx context.Context, filter models.NoteFilter, changes []models.NoteChange, partial bool) ([]models.Note, error)

	// BulkDestroy deletes the records of the filtered set whose id is in
	// ids and reports how many were removed. Missing ids are not an error.
	BulkDestroy(ctx context.Context, filter models.NoteFilter, ids []int64) (int64, error)

	// DeleteNote removes a single note or returns the store's not-found error.
	DeleteNote(ctx context.Context, id int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// NoteServiceWrapper defines middleware composition for NoteService.
// Implementations wrap an existing NoteService to add behavior such as
// logging or validating.
type NoteServiceWrapper interface {
	Wrap(NoteService) NoteService
}
