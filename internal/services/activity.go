package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/repositories/activity"
)

// ActivityService records completed authenticated actions.
type ActivityService struct {
	repo activity.Repository
	log  logging.Logger
	now  func() time.Time
}

func NewActivityService(repo activity.Repository, log logging.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log, now: time.Now}
}

// Append logs one quote view stamped with the local clock.
//
// A storage failure is logged and returned as common.ErrStoreUnavailable.
// The action being logged has already happened; callers report the error
// and move on.
func (s *ActivityService) Append(ctx context.Context, identifier, subjectName string, quote *models.Quote) (*models.ActivityRecord, error) {
	rec := &models.ActivityRecord{
		Identifier:  identifier,
		Timestamp:   s.now().Local().Truncate(time.Second),
		SubjectName: subjectName,
		Quote:       *quote,
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		s.log.Error(ctx, "activity append failed", "identifier", identifier, "subject", subjectName, "error", err)
		if errors.Is(err, common.ErrStoreUnavailable) {
			return nil, fmt.Errorf("append activity: %w", err)
		}
		return nil, fmt.Errorf("%w: append activity: %w", common.ErrStoreUnavailable, err)
	}
	return rec, nil
}

// History returns the identifier's records in append order.
func (s *ActivityService) History(ctx context.Context, identifier string) ([]*models.ActivityRecord, error) {
	records, err := s.repo.ListByIdentifier(ctx, identifier)
	if err != nil {
		s.log.Error(ctx, "activity read failed", "identifier", identifier, "error", err)
		return nil, err
	}
	return records, nil
}
