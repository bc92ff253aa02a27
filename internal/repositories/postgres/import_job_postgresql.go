package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/studyprep/content-service/internal/models"
	"github.com/studyprep/content-service/internal/repositories"
)

type importJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) repositories.ImportJobRepository {
	return &importJobRepository{db: db}
}

func (r *importJobRepository) Create(ctx context.Context, job *models.ImportJob) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create import job: %w", err)
	}
	return nil
}

func (r *importJobRepository) Update(ctx context.Context, job *models.ImportJob) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return fmt.Errorf("failed to update import job %s: %w", job.ID, err)
	}
	return nil
}

func (r *importJobRepository) GetByID(ctx context.Context, id string) (*models.ImportJob, error) {
	var job models.ImportJob
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *importJobRepository) List(ctx context.Context, filters repositories.ImportJobFilters) ([]*models.ImportJob, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ImportJob{})

	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count import jobs: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var jobs []*models.ImportJob
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list import jobs: %w", err)
	}

	return jobs, total, nil
}
