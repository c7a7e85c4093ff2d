package activity

import (
	"context"
	"database/sql"
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

func (r *SQLiteRepository) Append(ctx context.Context, rec *models.ActivityRecord) error {
	return insertActivity(ctx, r.db, `
		INSERT INTO activity (identifier, logged_date, logged_time, subject_name, symbol,
			current_price, open_price, high_price, low_price, previous_close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec)
}

func (r *SQLiteRepository) ListByIdentifier(ctx context.Context, identifier string) ([]*models.ActivityRecord, error) {
	return listActivity(ctx, r.db, `
		SELECT identifier, logged_date, logged_time, subject_name, symbol,
			current_price, open_price, high_price, low_price, previous_close, volume
		FROM activity WHERE identifier = ? ORDER BY id
	`, identifier)
}

func insertActivity(ctx context.Context, db dbx.DBTX, query string, rec *models.ActivityRecord) error {
	q := rec.Quote
	_, err := db.ExecContext(ctx, query,
		rec.Identifier, rec.Date(), rec.Time(), rec.SubjectName, q.Symbol,
		q.CurrentPrice, q.OpenPrice, q.HighPrice, q.LowPrice, q.PreviousClose, q.Volume)
	if err != nil {
		return fmt.Errorf("%w: failed to insert activity: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}

func listActivity(ctx context.Context, db dbx.DBTX, query, identifier string) ([]*models.ActivityRecord, error) {
	rows, err := db.QueryContext(ctx, query, identifier)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select activity: %w", common.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []*models.ActivityRecord
	for rows.Next() {
		var (
			rec         models.ActivityRecord
			date, clock string
		)
		q := &rec.Quote
		if err := rows.Scan(&rec.Identifier, &date, &clock, &rec.SubjectName, &q.Symbol,
			&q.CurrentPrice, &q.OpenPrice, &q.HighPrice, &q.LowPrice, &q.PreviousClose, &q.Volume); err != nil {
			return nil, fmt.Errorf("%w: failed to scan activity row: %w", common.ErrStoreUnavailable, err)
		}
		if rec.Timestamp, err = models.ParseTimestamp(date, clock); err != nil {
			return nil, fmt.Errorf("%w: bad activity timestamp: %w", common.ErrStoreUnavailable, err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate activity rows: %w", common.ErrStoreUnavailable, err)
	}
	return out, nil
}
