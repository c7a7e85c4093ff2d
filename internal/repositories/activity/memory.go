package activity

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/models"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	records []models.ActivityRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Append(_ context.Context, rec *models.ActivityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *rec)
	return nil
}

func (r *MemoryRepository) ListByIdentifier(_ context.Context, identifier string) ([]*models.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.ActivityRecord
	for i := range r.records {
		if r.records[i].Identifier == identifier {
			rec := r.records[i]
			out = append(out, &rec)
		}
	}
	return out, nil
}
