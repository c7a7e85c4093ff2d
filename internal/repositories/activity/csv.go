package activity

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// activityFields is the column count of an activity row: identifier, date,
// time, subject name, symbol, current, open, high, low, previous close, volume.
const activityFields = 11

// CSVRepository appends activity rows to a headerless CSV file.
//
// Each record is encoded in full, then written with a single O_APPEND write
// and fsynced before Append returns. Existing lines are never rewritten.
type CSVRepository struct {
	path string
	mu   sync.Mutex
}

func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{path: path}
}

func (r *CSVRepository) Append(_ context.Context, rec *models.ActivityRecord) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(encodeRow(rec)); err != nil {
		return fmt.Errorf("%w: failed to encode activity: %w", common.ErrStoreUnavailable, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: failed to encode activity: %w", common.ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("%w: failed to open activity log: %w", common.ErrStoreUnavailable, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: failed to append activity: %w", common.ErrStoreUnavailable, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: failed to sync activity log: %w", common.ErrStoreUnavailable, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close activity log: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *CSVRepository) ListByIdentifier(_ context.Context, identifier string) ([]*models.ActivityRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open activity log: %w", common.ErrStoreUnavailable, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = activityFields

	var out []*models.ActivityRecord
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read activity log: %w", common.ErrStoreUnavailable, err)
		}
		if row[0] != identifier {
			continue
		}
		rec, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: activity log line %d: %w", common.ErrStoreUnavailable, line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func encodeRow(rec *models.ActivityRecord) []string {
	q := rec.Quote
	return []string{
		rec.Identifier,
		rec.Date(),
		rec.Time(),
		rec.SubjectName,
		q.Symbol,
		q.CurrentPrice.String(),
		q.OpenPrice.String(),
		q.HighPrice.String(),
		q.LowPrice.String(),
		q.PreviousClose.String(),
		strconv.FormatInt(q.Volume, 10),
	}
}

func decodeRow(row []string) (*models.ActivityRecord, error) {
	ts, err := models.ParseTimestamp(row[1], row[2])
	if err != nil {
		return nil, err
	}
	prices := make([]decimal.Decimal, 5)
	for i := range prices {
		if prices[i], err = decimal.NewFromString(row[5+i]); err != nil {
			return nil, err
		}
	}
	volume, err := strconv.ParseInt(row[10], 10, 64)
	if err != nil {
		return nil, err
	}
	return &models.ActivityRecord{
		Identifier:  row[0],
		Timestamp:   ts,
		SubjectName: row[3],
		Quote: models.Quote{
			Symbol:        row[4],
			CurrentPrice:  prices[0],
			OpenPrice:     prices[1],
			HighPrice:     prices[2],
			LowPrice:      prices[3],
			PreviousClose: prices[4],
			Volume:        volume,
		},
	}, nil
}
