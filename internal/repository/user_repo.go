package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/relato-ai/relato/internal/models"
)

// UserRepository exposes the user reads and credit mutation the ledger
// needs. Credit changes go through GetForUpdate + SaveCredits inside a
// transaction so concurrent debits serialise on the user row.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetForUpdate(ctx context.Context, id uint) (models.User, error)
	SaveCredits(ctx context.Context, id uint, credits int64) error
}

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetForUpdate(ctx context.Context, id uint) (models.User, error) {
	tx := r.db.WithContext(ctx)
	// sqlite serialises writers on its own and rejects FOR UPDATE.
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) SaveCredits(ctx context.Context, id uint, credits int64) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("credits", credits).Error
}
