package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/studyprep/content-service/internal/models"
)

// ImportJobFilters narrows import-job listings.
type ImportJobFilters struct {
	UserID string
	Status models.ImportJobStatus
	Limit  int
	Offset int
}

// ImportJobRepository stores import-job bookkeeping. Content never lands
// here; the remote API owns it.
type ImportJobRepository interface {
	Create(ctx context.Context, job *models.ImportJob) error
	Update(ctx context.Context, job *models.ImportJob) error
	GetByID(ctx context.Context, id string) (*models.ImportJob, error)
	List(ctx context.Context, filters ImportJobFilters) ([]*models.ImportJob, int64, error)
}

// IsNotFoundError reports whether err is a record-not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
