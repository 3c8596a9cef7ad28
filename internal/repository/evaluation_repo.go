package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/relato-ai/relato/internal/models"
)

// EvaluationRepository exposes persistence helpers for evaluation audit
// rows. A (contest, triggering user) pair holds at most one row; the
// replacement on re-run is driven by the evaluation service.
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	FindByContestAndActor(ctx context.Context, contestID, actorID uint) (models.Evaluation, error)
	DeleteByID(ctx context.Context, id uint) error
}

type evaluationRepository struct {
	db *gorm.DB
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) FindByContestAndActor(ctx context.Context, contestID, actorID uint) (models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.WithContext(ctx).
		Where("contest_id = ? AND triggered_by_id = ?", contestID, actorID).
		First(&evaluation).Error
	if err != nil {
		return models.Evaluation{}, err
	}
	return evaluation, nil
}

func (r *evaluationRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Evaluation{}, id).Error
}
