package credentials

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	order   []string
	records map[string]models.CredentialRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]models.CredentialRecord)}
}

func (r *MemoryRepository) Create(_ context.Context, rec *models.CredentialRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.Identifier]; ok {
		return fmt.Errorf("create %q: %w", rec.Identifier, common.ErrDuplicateIdentifier)
	}
	r.records[rec.Identifier] = *rec
	r.order = append(r.order, rec.Identifier)
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, identifier string) (*models.CredentialRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[identifier]
	if !ok {
		return nil, fmt.Errorf("find %q: %w", identifier, common.ErrNotFound)
	}
	return &rec, nil
}

func (r *MemoryRepository) ReplacePasswordHash(_ context.Context, identifier, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[identifier]
	if !ok {
		return fmt.Errorf("replace password for %q: %w", identifier, common.ErrNotFound)
	}
	rec.PasswordHash = newHash
	r.records[identifier] = rec
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.CredentialRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.CredentialRecord, 0, len(r.order))
	for _, id := range r.order {
		rec := r.records[id]
		out = append(out, &rec)
	}
	return out, nil
}
