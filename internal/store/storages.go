package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bulk-notes/internal/config"
	"github.com/MKhiriev/go-bulk-notes/internal/logger"
)

// Storages aggregates every repository of the application behind one handle.
type Storages struct {
	NoteRepository NoteRepository

	db *DB
}

// NewStorages opens the database connection named by cfg.Driver, applies the
// embedded migrations and wires the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", config.ErrInvalidStorageConfigs, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if migrateErr := db.Migrate(); migrateErr != nil {
		log.Err(migrateErr).Str("func", "NewStorages").Msg("failed to apply migrations")
		return nil, migrateErr
	}

	return &Storages{
		NoteRepository: NewNoteRepository(db, log),
		db:             db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
