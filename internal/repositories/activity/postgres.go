package activity

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/stockkeeper/internal/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, rec *models.ActivityRecord) error {
	return insertActivity(ctx, r.db,
		`INSERT INTO activity (identifier, logged_date, logged_time, subject_name, symbol,
		 current_price, open_price, high_price, low_price, previous_close, volume)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec)
}

func (r *PostgresRepository) ListByIdentifier(ctx context.Context, identifier string) ([]*models.ActivityRecord, error) {
	return listActivity(ctx, r.db,
		`SELECT identifier, logged_date, logged_time, subject_name, symbol,
		 current_price, open_price, high_price, low_price, previous_close, volume
		 FROM activity WHERE identifier = $1 ORDER BY id`,
		identifier)
}
