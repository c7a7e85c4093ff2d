// Package credentials implements the credential store: the durable mapping
// from account identifier to credential record.
//
// Four implementations share one contract:
//   - MemoryRepository  in-process, for tests
//   - CSVRepository     flat file, copy-on-write with an atomic rename
//   - SQLiteRepository  modernc.org/sqlite
//   - PostgresRepository pgx through database/sql
//
// Create rejects an existing identifier with common.ErrDuplicateIdentifier.
// Find and ReplacePasswordHash report an unknown identifier with
// common.ErrNotFound. Storage failures wrap common.ErrStoreUnavailable.
// Records are never deleted.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/stockkeeper/internal/models"
)

type Repository interface {
	Create(ctx context.Context, rec *models.CredentialRecord) error
	Find(ctx context.Context, identifier string) (*models.CredentialRecord, error)
	ReplacePasswordHash(ctx context.Context, identifier, newHash string) error
	// List returns every record in insertion order.
	List(ctx context.Context) ([]*models.CredentialRecord, error)
}
