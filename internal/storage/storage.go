// Package storage opens the credential store and the activity log for the
// configured backend.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/stockkeeper/internal/client/config"
	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/filex"
	"github.com/dmitrijs2005/stockkeeper/internal/migrations"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/activity"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/credentials"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Repositories bundles the stores used by the services.
type Repositories struct {
	Credentials credentials.Repository
	Activity    activity.Repository

	db *sql.DB
}

// Close releases the database handle, if any.
func (r *Repositories) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Seams for tests.
var (
	openDB        = sql.Open
	runMigrations = migrations.Up
)

// Open prepares the backend named by cfg.Storage and applies pending
// migrations for the SQL ones.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Storage {
	case config.StorageCSV:
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
		}
		return &Repositories{
			Credentials: credentials.NewCSVRepository(filepath.Join(dir, common.CredentialsFileName)),
			Activity:    activity.NewCSVRepository(filepath.Join(dir, common.ActivityFileName)),
		}, nil

	case config.StorageSQLite:
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
		}
		dsn := filepath.Join(dir, common.DatabaseFileName) + "?_pragma=busy_timeout(5000)"
		db, err := openSQL(ctx, "sqlite", dsn, migrations.DialectSQLite)
		if err != nil {
			return nil, err
		}
		// One writer at a time; sqlite serializes them anyway.
		db.SetMaxOpenConns(1)
		return &Repositories{
			Credentials: credentials.NewSQLiteRepository(db),
			Activity:    activity.NewSQLiteRepository(db),
			db:          db,
		}, nil

	case config.StoragePostgres:
		if cfg.DatabaseDSN == "" {
			return nil, fmt.Errorf("postgres storage requires a database DSN")
		}
		db, err := openSQL(ctx, "pgx", cfg.DatabaseDSN, migrations.DialectPostgres)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Credentials: credentials.NewPostgresRepository(db),
			Activity:    activity.NewPostgresRepository(db),
			db:          db,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}

func openSQL(ctx context.Context, driver, dsn, dialect string) (*sql.DB, error) {
	db, err := openDB(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s database: %w", common.ErrStoreUnavailable, driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to connect to %s database: %w", common.ErrStoreUnavailable, driver, err)
	}
	if err := runMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return db, nil
}
