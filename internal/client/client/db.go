package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/agsregistration/internal/client/migrations"
	"github.com/dmitrijs2005/agsregistration/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/agsregistration/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Database is the opened local draft database with its repositories.
type Database struct {
	DB     *sql.DB
	Drafts drafts.Repository
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	return d.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the SQLite file at dsn and applies
// migrations.
func InitDatabase(ctx context.Context, dsn string) (*Database, error) {
	if dsn != ":memory:" {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one writer; also keeps :memory: databases on a single connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Database{
		DB:     db,
		Drafts: drafts.NewSQLiteRepository(db),
	}, nil
}
