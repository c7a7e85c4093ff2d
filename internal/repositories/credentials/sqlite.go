package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/dbx"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, rec *models.CredentialRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (identifier, password_hash, security_question, security_answer)
		VALUES (?, ?, ?, ?)
	`, rec.Identifier, rec.PasswordHash, rec.SecurityQuestion, rec.SecurityAnswer)
	if dbx.IsUniqueViolation(err) {
		return fmt.Errorf("create %q: %w", rec.Identifier, common.ErrDuplicateIdentifier)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to insert credential: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *SQLiteRepository) Find(ctx context.Context, identifier string) (*models.CredentialRecord, error) {
	rec := &models.CredentialRecord{}
	err := r.db.QueryRowContext(ctx, `
		SELECT identifier, password_hash, security_question, security_answer
		FROM credentials WHERE identifier = ?
	`, identifier).Scan(&rec.Identifier, &rec.PasswordHash, &rec.SecurityQuestion, &rec.SecurityAnswer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find %q: %w", identifier, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select credential: %w", common.ErrStoreUnavailable, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) ReplacePasswordHash(ctx context.Context, identifier, newHash string) error {
	return replacePasswordHash(ctx, r.db, `UPDATE credentials SET password_hash = ? WHERE identifier = ?`, identifier, newHash)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.CredentialRecord, error) {
	return listCredentials(ctx, r.db, `
		SELECT identifier, password_hash, security_question, security_answer
		FROM credentials ORDER BY seq
	`)
}

// replacePasswordHash runs the UPDATE in its own transaction and rolls back
// unless exactly one row changed. The query takes (newHash, identifier).
func replacePasswordHash(ctx context.Context, db *sql.DB, query, identifier, newHash string) error {
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, query, newHash, identifier)
		if err != nil {
			return fmt.Errorf("%w: failed to update credential: %w", common.ErrStoreUnavailable, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: failed to get rows affected: %w", common.ErrStoreUnavailable, err)
		}
		if n == 0 {
			return fmt.Errorf("replace password for %q: %w", identifier, common.ErrNotFound)
		}
		if n != 1 {
			return fmt.Errorf("%w: %d credentials matched %q", common.ErrStoreUnavailable, n, identifier)
		}
		return nil
	})
	if err != nil && !errors.Is(err, common.ErrNotFound) && !errors.Is(err, common.ErrStoreUnavailable) {
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return err
}

func listCredentials(ctx context.Context, db dbx.DBTX, query string) ([]*models.CredentialRecord, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list credentials: %w", common.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []*models.CredentialRecord
	for rows.Next() {
		rec := &models.CredentialRecord{}
		if err := rows.Scan(&rec.Identifier, &rec.PasswordHash, &rec.SecurityQuestion, &rec.SecurityAnswer); err != nil {
			return nil, fmt.Errorf("%w: failed to scan credential row: %w", common.ErrStoreUnavailable, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate credential rows: %w", common.ErrStoreUnavailable, err)
	}
	return out, nil
}
