package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/relato-ai/relato/internal/models"
)

// WritingRequestRepository exposes persistence helpers for writing audit
// rows.
type WritingRequestRepository interface {
	Create(ctx context.Context, request *models.WritingRequest) error
	FindByContestAndWriter(ctx context.Context, contestID, writerID uint) (models.WritingRequest, error)
}

type writingRequestRepository struct {
	db *gorm.DB
}

func (r *writingRequestRepository) Create(ctx context.Context, request *models.WritingRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *writingRequestRepository) FindByContestAndWriter(ctx context.Context, contestID, writerID uint) (models.WritingRequest, error) {
	var request models.WritingRequest
	err := r.db.WithContext(ctx).
		Where("contest_id = ? AND writer_id = ?", contestID, writerID).
		First(&request).Error
	if err != nil {
		return models.WritingRequest{}, err
	}
	return request, nil
}
