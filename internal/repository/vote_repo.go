package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/relato-ai/relato/internal/models"
)

// VoteRepository exposes persistence helpers for judge votes. Vote sets are
// replaced wholesale on re-evaluation, so deletes are keyed by contest and
// judge rather than by row.
type VoteRepository interface {
	CreateAll(ctx context.Context, votes []models.Vote) error
	DeleteByContestAndJudge(ctx context.Context, contestID, judgeProfileID uint) error
	ListByContestAndJudge(ctx context.Context, contestID, judgeProfileID uint) ([]models.Vote, error)
}

type voteRepository struct {
	db *gorm.DB
}

func (r *voteRepository) CreateAll(ctx context.Context, votes []models.Vote) error {
	if len(votes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&votes).Error
}

func (r *voteRepository) DeleteByContestAndJudge(ctx context.Context, contestID, judgeProfileID uint) error {
	return r.db.WithContext(ctx).
		Where("contest_id = ? AND judge_profile_id = ?", contestID, judgeProfileID).
		Delete(&models.Vote{}).Error
}

func (r *voteRepository) ListByContestAndJudge(ctx context.Context, contestID, judgeProfileID uint) ([]models.Vote, error) {
	var votes []models.Vote
	err := r.db.WithContext(ctx).
		Where("contest_id = ? AND judge_profile_id = ?", contestID, judgeProfileID).
		Order("submission_id asc").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}
