package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/relato-ai/relato/internal/models"
)

// LedgerRepository exposes the append-only credit ledger.
type LedgerRepository interface {
	Append(ctx context.Context, entry *models.CreditEntry) error
	ListByUser(ctx context.Context, userID uint) ([]models.CreditEntry, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func (r *ledgerRepository) Append(ctx context.Context, entry *models.CreditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID uint) ([]models.CreditEntry, error) {
	var entries []models.CreditEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
