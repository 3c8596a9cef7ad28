package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/relato-ai/relato/internal/models"
)

// JudgeRepository exposes judge profiles and their contest assignments.
type JudgeRepository interface {
	GetProfile(ctx context.Context, id uint) (models.JudgeProfile, error)
	GetAssignment(ctx context.Context, contestID, judgeProfileID uint) (models.ContestJudge, error)
}

type judgeRepository struct {
	db *gorm.DB
}

func (r *judgeRepository) GetProfile(ctx context.Context, id uint) (models.JudgeProfile, error) {
	var profile models.JudgeProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return models.JudgeProfile{}, err
	}
	return profile, nil
}

func (r *judgeRepository) GetAssignment(ctx context.Context, contestID, judgeProfileID uint) (models.ContestJudge, error) {
	var assignment models.ContestJudge
	err := r.db.WithContext(ctx).
		Where("contest_id = ? AND judge_profile_id = ?", contestID, judgeProfileID).
		First(&assignment).Error
	if err != nil {
		return models.ContestJudge{}, err
	}
	return assignment, nil
}
