package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bulk-notes/models"
)

const notesTable = "notes"

var noteColumns = []string{"id", "title", "body", "tag", "done", "created_at", "updated_at"}

// psql builds queries with $N placeholders. Dollar placeholders are accepted
// by both the pgx and the sqlite3 drivers, so one builder serves both backends.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func applyNoteFilter(builder sq.SelectBuilder, filter models.NoteFilter) sq.SelectBuilder {
	if filter.Done != nil {
		builder = builder.Where(sq.Eq{"done": *filter.Done})
	}
	if filter.Tag != "" {
		builder = builder.Where(sq.Eq{"tag": filter.Tag})
	}

	return builder
}

func selectNotesQuery(filter models.NoteFilter) (string, []any, error) {
	builder := psql.Select(noteColumns...).
		From(notesTable).
		OrderBy("id ASC")
	builder = applyNoteFilter(builder, filter)

	return builder.ToSql()
}

func selectNoteByIDQuery(id int64) (string, []any, error) {
	return psql.Select(noteColumns...).
		From(notesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func selectNotesByIDsQuery(filter models.NoteFilter, ids []int64) (string, []any, error) {
	builder := psql.Select(noteColumns...).
		From(notesTable).
		Where(sq.Eq{"id": ids}).
		OrderBy("id ASC")
	builder = applyNoteFilter(builder, filter)

	return builder.ToSql()
}

func selectExistingIDsQuery(filter models.NoteFilter, ids []int64) (string, []any, error) {
	builder := psql.Select("id").
		From(notesTable).
		Where(sq.Eq{"id": ids}).
		OrderBy("id ASC")
	builder = applyNoteFilter(builder, filter)

	return builder.ToSql()
}

func insertNoteQuery(note *models.Note) (string, []any, error) {
	return psql.Insert(notesTable).
		Columns("title", "body", "tag", "done", "created_at", "updated_at").
		Values(note.Title, note.Body, note.Tag, note.Done, note.CreatedAt, note.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

// upsertNoteQuery inserts a note under its client-supplied identity. On an
// identity collision the existing row is overwritten in place, keeping its
// original created_at.
func upsertNoteQuery(note *models.Note) (string, []any, error) {
	return psql.Insert(notesTable).
		Columns(noteColumns...).
		Values(note.ID, note.Title, note.Body, note.Tag, note.Done, note.CreatedAt, note.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	body = excluded.body,
	tag = excluded.tag,
	done = excluded.done,
	updated_at = excluded.updated_at`).
		ToSql()
}

// updateNoteQuery builds an UPDATE with a SET list covering only the fields
// present in the change. updated_at is always bumped.
func updateNoteQuery(change models.NoteChange, updatedAt time.Time) (string, []any, error) {
	builder := psql.Update(notesTable).
		Set("updated_at", updatedAt)

	if change.Title != nil {
		builder = builder.Set("title", *change.Title)
	}
	if change.Body != nil {
		builder = builder.Set("body", *change.Body)
	}
	if change.Tag != nil {
		builder = builder.Set("tag", *change.Tag)
	}
	if change.Done != nil {
		builder = builder.Set("done", *change.Done)
	}

	return builder.Where(sq.Eq{"id": derefID(change.ID)}).ToSql()
}

func deleteNotesQuery(ids []int64) (string, []any, error) {
	return psql.Delete(notesTable).
		Where(sq.Eq{"id": ids}).
		ToSql()
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}

	return *id
}
