package store

import (
	"database/sql"
	"time"

	"github.com/MKhiriev/go-bulk-notes/internal/logger"
	"github.com/MKhiriev/go-bulk-notes/migrations"
)

// DB wraps the raw database handle together with the driver-specific error
// classifier used to map constraint violations to domain errors.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	// clock is overridable in tests, nil means time.Now.
	clock func() time.Time
}

func (db *DB) now() time.Time {
	if db.clock != nil {
		return db.clock()
	}

	return time.Now().UTC()
}

// Migrate applies all embedded schema migrations for the wrapped driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
