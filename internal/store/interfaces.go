package store

import (
	"context"

	"github.com/MKhiriev/go-bulk-notes/models"
)

// NoteRepository is the persistence contract of the note domain. Every
// multi-record method runs its statements inside a single transaction so a
// batch either lands completely or not at all.
type NoteRepository interface {
	// List returns all notes matching the filter, ordered by id.
	List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)

	// GetByID returns a single note or [ErrNoteNotFound].
	GetByID(ctx context.Context, id int64) (models.Note, error)

	// GetByIDs returns the notes of the filtered set whose id is in ids,
	// ordered by id. Missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, filter models.NoteFilter, ids []int64) ([]models.Note, error)

	// ExistingIDs returns the subset of ids that exist inside the filtered
	// set, ordered by id.
	ExistingIDs(ctx context.Context, filter models.NoteFilter, ids []int64) ([]int64, error)

	// Insert persists new notes. Each note's ID is populated with the
	// database-assigned primary key.
	Insert(ctx context.Context, notes ...*models.Note) error

	// Upsert persists notes inserting or overwriting by identity: a note
	// with zero ID is inserted (and its ID populated), a note with non-zero
	// ID replaces the stored record with that id, inserting it if absent.
	Upsert(ctx context.Context, notes []*models.Note) error

	// Update applies the changes as forced updates: only the fields present
	// on each change are written. A change whose id matches no record yields
	// [ErrNoteNotFound] and rolls the batch back.
	Update(ctx context.Context, changes []models.NoteChange) error

	// Delete removes the notes with the given ids and reports how many rows
	// were removed. Missing ids are not an error.
	Delete(ctx context.Context, ids []int64) (int64, error)
}
