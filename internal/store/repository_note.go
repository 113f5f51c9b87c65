package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/models"
)

// noteRepository is the SQL-backed implementation of [NoteRepository].
// It executes all note CRUD operations against the "notes" table using the
// embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via [logger.FromContext]
// so that all database interactions are traced with structured fields
// (note ids, batch sizes, iteration index, etc.).
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// List retrieves every note matching the given filter, ordered by id.
//
// Returns an empty slice when no records match.
func (r *noteRepository) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectNotesQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.List").
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, queryErr := r.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "noteRepository.List").
			Msg("failed to execute query for listing notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	return scanNotes(ctx, rows, "noteRepository.List")
}

// GetByID retrieves a single note by its identity.
//
// Returns [ErrNoteNotFound] when no record with the given id exists.
func (r *noteRepository) GetByID(ctx context.Context, id int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectNoteByIDQuery(id)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetByID").
			Int64("note_id", id).
			Msg("failed to create query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var note models.Note
	scanErr := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&note.ID,
		&note.Title,
		&note.Body,
		&note.Tag,
		&note.Done,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if errors.Is(scanErr, sql.ErrNoRows) {
		log.Warn().
			Str("func", "noteRepository.GetByID").
			Int64("note_id", id).
			Msg("note not found")
		return models.Note{}, ErrNoteNotFound
	}
	if scanErr != nil {
		log.Err(scanErr).
			Str("func", "noteRepository.GetByID").
			Int64("note_id", id).
			Msg("failed to scan note row")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return note, nil
}

// GetByIDs retrieves the notes whose ids are listed in ids, additionally
// narrowed by filter. Missing ids are silently absent from the result;
// callers that need to distinguish missing identities use [ExistingIDs] first.
func (r *noteRepository) GetByIDs(ctx context.Context, filter models.NoteFilter, ids []int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return []models.Note{}, nil
	}

	query, args, err := selectNotesByIDsQuery(filter, ids)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetByIDs").
			Int("ids_count", len(ids)).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, queryErr := r.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "noteRepository.GetByIDs").
			Int("ids_count", len(ids)).
			Msg("failed to execute query for getting requested notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	return scanNotes(ctx, rows, "noteRepository.GetByIDs")
}

// ExistingIDs returns the subset of ids that currently exist in the table
// and match the given filter, ordered ascending.
func (r *noteRepository) ExistingIDs(ctx context.Context, filter models.NoteFilter, ids []int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return []int64{}, nil
	}

	query, args, err := selectExistingIDsQuery(filter, ids)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ExistingIDs").
			Int("ids_count", len(ids)).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, queryErr := r.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "noteRepository.ExistingIDs").
			Int("ids_count", len(ids)).
			Msg("failed to execute query for checking existing note ids")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	existing := make([]int64, 0, len(ids))

	for rows.Next() {
		var id int64
		if scanErr := rows.Scan(&id); scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.ExistingIDs").
				Msg("failed to scan note id")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		existing = append(existing, id)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "noteRepository.ExistingIDs").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return existing, nil
}

// Insert persists one or more new notes.
//
// Routing strategy:
//   - Exactly one note → [insertSingleNote] (plain INSERT, no transaction).
//   - Two or more notes → [insertMultipleNotes] (transaction with a prepared statement).
//
// On success each [models.Note.ID] is populated with the server-assigned
// primary key returned by the INSERT … RETURNING id clause.
func (r *noteRepository) Insert(ctx context.Context, notes ...*models.Note) error {
	if len(notes) == 0 {
		return nil
	}

	if len(notes) == 1 {
		return r.insertSingleNote(ctx, notes[0])
	}

	return r.insertMultipleNotes(ctx, notes)
}

// insertSingleNote inserts a single note without opening a transaction.
//
// The generated database ID is written back into note.ID via the
// INSERT … RETURNING id clause.
func (r *noteRepository) insertSingleNote(ctx context.Context, note *models.Note) error {
	log := logger.FromContext(ctx)

	query, args, err := insertNoteQuery(note)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.insertSingleNote").
			Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	log.Debug().
		Str("func", "noteRepository.insertSingleNote").
		Str("title", note.Title).
		Msg("saving single note record")

	queryErr := r.DB.QueryRowContext(ctx, query, args...).Scan(&note.ID)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "noteRepository.insertSingleNote").
			Str("title", note.Title).
			Msg("failed to save note")
		return r.classifyWriteError(queryErr)
	}

	return nil
}

// insertMultipleNotes inserts two or more notes inside a single database
// transaction using a prepared statement for efficiency.
//
// The prepared statement is created once and reused for every note. Each
// generated database ID is written back into the corresponding
// [models.Note.ID] field.
//
// The transaction is rolled back automatically (via defer) if any individual
// insert fails; the commit is attempted only after all notes succeed.
func (r *noteRepository) insertMultipleNotes(ctx context.Context, notes []*models.Note) error {
	log := logger.FromContext(ctx)

	query, _, err := insertNoteQuery(notes[0])
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.insertMultipleNotes").
			Int("count", len(notes)).
			Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.insertMultipleNotes").
			Int("count", len(notes)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.insertMultipleNotes").
			Int("count", len(notes)).
			Msg("failed to prepare statement")
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for idx, note := range notes {
		log.Debug().
			Str("func", "noteRepository.insertMultipleNotes").
			Int("iteration", idx+1).
			Int("total", len(notes)).
			Str("title", note.Title).
			Msg("saving note in transaction")

		queryErr := stmt.QueryRowContext(ctx,
			note.Title,
			note.Body,
			note.Tag,
			note.Done,
			note.CreatedAt,
			note.UpdatedAt,
		).Scan(&note.ID)

		if queryErr != nil {
			log.Err(queryErr).
				Str("func", "noteRepository.insertMultipleNotes").
				Int("iteration", idx+1).
				Str("title", note.Title).
				Msg("failed to execute prepared statement")
			return r.classifyWriteError(queryErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "noteRepository.insertMultipleNotes").
			Int("count", len(notes)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// Upsert persists a batch of notes under their client-supplied identities
// inside a single transaction. Existing rows are overwritten in place;
// missing rows are created.
func (r *noteRepository) Upsert(ctx context.Context, notes []*models.Note) error {
	log := logger.FromContext(ctx)

	if len(notes) == 0 {
		log.Warn().
			Str("func", "noteRepository.Upsert").
			Msg("no notes provided")
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Upsert").
			Int("count", len(notes)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for idx, note := range notes {
		query, args, buildErr := upsertNoteQuery(note)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "noteRepository.Upsert").
				Int("iteration", idx+1).
				Int64("note_id", note.ID).
				Msg("failed to create query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		log.Debug().
			Str("func", "noteRepository.Upsert").
			Int("iteration", idx+1).
			Int("total", len(notes)).
			Int64("note_id", note.ID).
			Msg("upserting note in transaction")

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			log.Err(execErr).
				Str("func", "noteRepository.Upsert").
				Int("iteration", idx+1).
				Int64("note_id", note.ID).
				Msg("failed to execute upsert query")
			return r.classifyWriteError(execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "noteRepository.Upsert").
			Int("count", len(notes)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "noteRepository.Upsert").
		Int("count", len(notes)).
		Msg("successfully upserted notes")

	return nil
}

// Update applies a batch of changes inside a single database transaction.
//
// Each change targets exactly one row by its identity. If any target row does
// not exist the whole batch is rolled back and [ErrNoteNotFound] is returned.
func (r *noteRepository) Update(ctx context.Context, changes []models.NoteChange) error {
	log := logger.FromContext(ctx)

	if len(changes) == 0 {
		log.Warn().
			Str("func", "noteRepository.Update").
			Msg("no changes provided")
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Update").
			Int("changes_count", len(changes)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for idx, change := range changes {
		query, args, buildErr := updateNoteQuery(change, r.DB.now())
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "noteRepository.Update").
				Int("iteration", idx+1).
				Int64("note_id", derefID(change.ID)).
				Msg("failed to build update query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		log.Debug().
			Str("func", "noteRepository.Update").
			Int("iteration", idx+1).
			Int("total", len(changes)).
			Int64("note_id", derefID(change.ID)).
			Msg("updating note in transaction")

		result, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "noteRepository.Update").
				Int("iteration", idx+1).
				Int64("note_id", derefID(change.ID)).
				Msg("failed to execute update query")
			return r.classifyWriteError(execErr)
		}

		affected, affectedErr := result.RowsAffected()
		if affectedErr != nil {
			log.Err(affectedErr).
				Str("func", "noteRepository.Update").
				Int("iteration", idx+1).
				Int64("note_id", derefID(change.ID)).
				Msg("failed to read affected rows count")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, affectedErr)
		}

		if affected == 0 {
			log.Warn().
				Str("func", "noteRepository.Update").
				Int("iteration", idx+1).
				Int64("note_id", derefID(change.ID)).
				Msg("note not found")
			return fmt.Errorf("failed to update note at index %d: %w", idx, ErrNoteNotFound)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "noteRepository.Update").
			Int("changes_count", len(changes)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "noteRepository.Update").
		Int("changes_count", len(changes)).
		Msg("successfully updated notes")

	return nil
}

// Delete removes the notes whose ids are listed in ids and reports how many
// rows were actually deleted. Ids that do not exist are ignored.
func (r *noteRepository) Delete(ctx context.Context, ids []int64) (int64, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		log.Warn().
			Str("func", "noteRepository.Delete").
			Msg("no ids provided")
		return 0, nil
	}

	query, args, err := deleteNotesQuery(ids)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Delete").
			Int("ids_count", len(ids)).
			Msg("failed to create query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, execErr := r.DB.ExecContext(ctx, query, args...)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "noteRepository.Delete").
			Int("ids_count", len(ids)).
			Msg("failed to execute delete query")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	deleted, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		log.Err(affectedErr).
			Str("func", "noteRepository.Delete").
			Int("ids_count", len(ids)).
			Msg("failed to read affected rows count")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, affectedErr)
	}

	log.Info().
		Str("func", "noteRepository.Delete").
		Int("ids_count", len(ids)).
		Int64("deleted_count", deleted).
		Msg("successfully deleted notes")

	return deleted, nil
}

// classifyWriteError maps raw driver errors to domain sentinels using the
// backend-specific classifier attached to the connection.
func (r *noteRepository) classifyWriteError(err error) error {
	if r.DB.errorClassificator != nil && r.DB.errorClassificator.Classify(err) == UniqueViolation {
		return fmt.Errorf("%w: %w", ErrNoteAlreadyExists, err)
	}

	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

// scanNotes drains rows into a note slice. funcName is used for log fields only.
func scanNotes(ctx context.Context, rows *sql.Rows, funcName string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	notes := make([]models.Note, 0, 50)

	for rows.Next() {
		var note models.Note

		scanErr := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Body,
			&note.Tag,
			&note.Done,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}
