package credentials

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/filex"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
)

// credentialFields is the column count of a credential row:
// identifier, password hash, security question, security answer.
const credentialFields = 4

// writeFileAtomic is a test seam for filex.WriteFileAtomic.
var writeFileAtomic = filex.WriteFileAtomic

// CSVRepository keeps credentials in a headerless CSV file.
//
// Every mutation reads the whole file, applies the change in memory and
// writes a complete new file through filex.WriteFileAtomic, so the file on
// disk is always either the old or the new version. Readers share the lock;
// writers hold it exclusively for the read-modify-write.
type CSVRepository struct {
	path string
	mu   sync.RWMutex
}

func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{path: path}
}

func (r *CSVRepository) Create(_ context.Context, rec *models.CredentialRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}
	for _, existing := range records {
		if existing.Identifier == rec.Identifier {
			return fmt.Errorf("create %q: %w", rec.Identifier, common.ErrDuplicateIdentifier)
		}
	}
	cp := *rec
	return r.store(append(records, &cp))
}

func (r *CSVRepository) Find(_ context.Context, identifier string) (*models.CredentialRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Identifier == identifier {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("find %q: %w", identifier, common.ErrNotFound)
}

func (r *CSVRepository) ReplacePasswordHash(_ context.Context, identifier, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}
	found := false
	for _, rec := range records {
		if rec.Identifier == identifier {
			rec.PasswordHash = newHash
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("replace password for %q: %w", identifier, common.ErrNotFound)
	}
	return r.store(records)
}

func (r *CSVRepository) List(_ context.Context) ([]*models.CredentialRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load()
}

// load reads every record. A missing file is an empty store.
func (r *CSVRepository) load() ([]*models.CredentialRecord, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open credentials: %w", common.ErrStoreUnavailable, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = credentialFields

	var records []*models.CredentialRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read credentials: %w", common.ErrStoreUnavailable, err)
		}
		records = append(records, &models.CredentialRecord{
			Identifier:       row[0],
			PasswordHash:     row[1],
			SecurityQuestion: row[2],
			SecurityAnswer:   row[3],
		})
	}
	return records, nil
}

func (r *CSVRepository) store(records []*models.CredentialRecord) error {
	err := writeFileAtomic(r.path, 0o600, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		for _, rec := range records {
			if err := cw.Write([]string{rec.Identifier, rec.PasswordHash, rec.SecurityQuestion, rec.SecurityAnswer}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return fmt.Errorf("%w: failed to write credentials: %w", common.ErrStoreUnavailable, err)
	}
	return nil
}
