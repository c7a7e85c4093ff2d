// Package activity implements the append-only activity log: one record per
// quote viewed by an authenticated user.
//
// Records are never modified or deleted. ListByIdentifier returns a user's
// records in the order they were appended. Storage failures wrap
// common.ErrStoreUnavailable.
package activity

import (
	"context"

	"github.com/dmitrijs2005/stockkeeper/internal/models"
)

type Repository interface {
	Append(ctx context.Context, rec *models.ActivityRecord) error
	ListByIdentifier(ctx context.Context, identifier string) ([]*models.ActivityRecord, error)
}
