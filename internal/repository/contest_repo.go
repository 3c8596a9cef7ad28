package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/relato-ai/relato/internal/models"
)

// ContestRepository exposes the contest reads the orchestrators need.
type ContestRepository interface {
	GetByID(ctx context.Context, id uint) (models.Contest, error)
}

type contestRepository struct {
	db *gorm.DB
}

func (r *contestRepository) GetByID(ctx context.Context, id uint) (models.Contest, error) {
	var contest models.Contest
	if err := r.db.WithContext(ctx).First(&contest, id).Error; err != nil {
		return models.Contest{}, err
	}
	return contest, nil
}
