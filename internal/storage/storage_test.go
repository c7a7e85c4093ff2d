package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/stockkeeper/internal/client/config"
	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/migrations"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/activity"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Storage = backend
	cfg.DataDir = filepath.Join(t.TempDir(), "nested", "data")
	return cfg
}

func TestOpen_CSV(t *testing.T) {
	cfg := testConfig(t, config.StorageCSV)
	ctx := context.Background()

	repos, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	assert.IsType(t, &credentials.CSVRepository{}, repos.Credentials)
	assert.IsType(t, &activity.CSVRepository{}, repos.Activity)

	require.NoError(t, repos.Credentials.Create(ctx, &models.CredentialRecord{Identifier: "a@b.com", PasswordHash: "h"}))
	_, err = os.Stat(filepath.Join(cfg.DataDir, common.CredentialsFileName))
	assert.NoError(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := testConfig(t, config.StorageSQLite)
	ctx := context.Background()

	repos, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	assert.IsType(t, &credentials.SQLiteRepository{}, repos.Credentials)
	assert.IsType(t, &activity.SQLiteRepository{}, repos.Activity)

	require.NoError(t, repos.Credentials.Create(ctx, &models.CredentialRecord{Identifier: "a@b.com", PasswordHash: "h"}))
	require.NoError(t, repos.Close())

	// Reopening keeps the data and does not re-run applied migrations.
	again, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close() })
	rec, err := again.Credentials.Find(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "h", rec.PasswordHash)
}

func TestOpen_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()

	origOpen, origMigrate := openDB, runMigrations
	t.Cleanup(func() { openDB, runMigrations = origOpen, origMigrate })

	var gotDriver, gotDSN, gotDialect string
	openDB = func(driver, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driver, dsn
		return db, nil
	}
	runMigrations = func(_ context.Context, _ *sql.DB, dialect string) error {
		gotDialect = dialect
		return nil
	}

	cfg := testConfig(t, config.StoragePostgres)
	cfg.DatabaseDSN = "postgres://u:p@localhost/sk"

	repos, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "pgx", gotDriver)
	assert.Equal(t, cfg.DatabaseDSN, gotDSN)
	assert.Equal(t, migrations.DialectPostgres, gotDialect)
	assert.IsType(t, &credentials.PostgresRepository{}, repos.Credentials)
	assert.IsType(t, &activity.PostgresRepository{}, repos.Activity)

	mock.ExpectClose()
	require.NoError(t, repos.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_PostgresMigrationFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()
	mock.ExpectClose()

	origOpen, origMigrate := openDB, runMigrations
	t.Cleanup(func() { openDB, runMigrations = origOpen, origMigrate })
	openDB = func(string, string) (*sql.DB, error) { return db, nil }
	runMigrations = func(context.Context, *sql.DB, string) error { return errors.New("goose exploded") }

	cfg := testConfig(t, config.StoragePostgres)
	cfg.DatabaseDSN = "postgres://localhost/sk"

	_, err = Open(context.Background(), cfg)
	require.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "goose exploded")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_PostgresPingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	origOpen := openDB
	t.Cleanup(func() { openDB = origOpen })
	openDB = func(string, string) (*sql.DB, error) { return db, nil }

	cfg := testConfig(t, config.StoragePostgres)
	cfg.DatabaseDSN = "postgres://localhost/sk"

	_, err = Open(context.Background(), cfg)
	require.ErrorIs(t, err, common.ErrStoreUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_PostgresWithoutDSN(t *testing.T) {
	cfg := testConfig(t, config.StoragePostgres)
	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := testConfig(t, "mongo")
	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}

func TestOpen_DataDirIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	cfg := testConfig(t, config.StorageCSV)
	cfg.DataDir = file
	_, err := Open(context.Background(), cfg)
	require.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestRepositories_CloseWithoutDB(t *testing.T) {
	assert.NoError(t, (&Repositories{}).Close())
}
