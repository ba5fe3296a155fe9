package store

import (
	sq "github.com/Masterminds/squirrel"

	"database/sql"

	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/migrations"
)

// DB wraps the raw database handle together with the driver-specific pieces
// the repositories need: a placeholder format for building queries, an error
// classificator and the goose dialect used for running migrations.
type DB struct {
	*sql.DB
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	dialect            string
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
