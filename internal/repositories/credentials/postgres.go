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

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.CredentialRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credentials (identifier, password_hash, security_question, security_answer)
		 VALUES ($1, $2, $3, $4)`,
		rec.Identifier, rec.PasswordHash, rec.SecurityQuestion, rec.SecurityAnswer)
	if dbx.IsUniqueViolation(err) {
		return fmt.Errorf("create %q: %w", rec.Identifier, common.ErrDuplicateIdentifier)
	}
	if err != nil {
		return fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, identifier string) (*models.CredentialRecord, error) {
	rec := &models.CredentialRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT identifier, password_hash, security_question, security_answer
		 FROM credentials WHERE identifier = $1`,
		identifier).Scan(&rec.Identifier, &rec.PasswordHash, &rec.SecurityQuestion, &rec.SecurityAnswer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find %q: %w", identifier, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: db error: %w", common.ErrStoreUnavailable, err)
	}
	return rec, nil
}

func (r *PostgresRepository) ReplacePasswordHash(ctx context.Context, identifier, newHash string) error {
	return replacePasswordHash(ctx, r.db, `UPDATE credentials SET password_hash = $1 WHERE identifier = $2`, identifier, newHash)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.CredentialRecord, error) {
	return listCredentials(ctx, r.db,
		`SELECT identifier, password_hash, security_question, security_answer
		 FROM credentials ORDER BY seq`)
}
