package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/relato-ai/relato/internal/models"
)

// SubmissionRepository exposes persistence helpers for contest submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	ListByContest(ctx context.Context, contestID uint) ([]models.Submission, error)
	FindGenerated(ctx context.Context, contestID, authorID uint) (models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

func (r *submissionRepository) ListByContest(ctx context.Context, contestID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Order("id asc").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) FindGenerated(ctx context.Context, contestID, authorID uint) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Where("contest_id = ? AND author_id = ? AND is_generated = ?", contestID, authorID, true).
		First(&submission).Error
	if err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}
