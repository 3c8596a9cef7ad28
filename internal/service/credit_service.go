package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/relato-ai/relato/internal/models"
	"github.com/relato-ai/relato/internal/repository"
)

// ErrInsufficientCredits indicates the user's balance cannot cover the
// debit. It aborts the surrounding transaction before any orchestrator
// write commits, and is distinguishable from provider errors so clients can
// prompt for a top-up.
var ErrInsufficientCredits = errors.New("insufficient credits")

// CreditService debits users for AI actions and appends the matching
// ledger entry. Charge must run inside the caller's transaction: the debit
// and the AI action it pays for either both commit or neither does.
type CreditService interface {
	Charge(ctx context.Context, tx repository.Store, userID uint, actionType string, credits int, realCost float64, description string) (models.CreditEntry, error)
}

// NewCreditService constructs the credit ledger service.
func NewCreditService(logger zerolog.Logger) CreditService {
	return &creditService{
		logger: logger.With().Str("component", "credit_service").Logger(),
	}
}

type creditService struct {
	logger zerolog.Logger
}

func (s *creditService) Charge(ctx context.Context, tx repository.Store, userID uint, actionType string, credits int, realCost float64, description string) (models.CreditEntry, error) {
	if credits < 0 {
		return models.CreditEntry{}, fmt.Errorf("credit charge must not be negative, got %d", credits)
	}

	user, err := tx.Users().GetForUpdate(ctx, userID)
	if err != nil {
		return models.CreditEntry{}, fmt.Errorf("load user for debit: %w", err)
	}

	if !user.CanAfford(int64(credits)) {
		s.logger.Info().
			Uint("user_id", userID).
			Int64("balance", user.Credits).
			Int("credits", credits).
			Msg("debit rejected, balance too low")
		return models.CreditEntry{}, ErrInsufficientCredits
	}

	newBalance := user.Credits - int64(credits)
	if err := tx.Users().SaveCredits(ctx, userID, newBalance); err != nil {
		return models.CreditEntry{}, fmt.Errorf("save balance: %w", err)
	}

	entry := models.CreditEntry{
		UserID:           userID,
		ActionType:       actionType,
		CreditsChange:    -int64(credits),
		RealCost:         realCost,
		Description:      description,
		ResultingBalance: newBalance,
	}
	if err := tx.Ledger().Append(ctx, &entry); err != nil {
		return models.CreditEntry{}, fmt.Errorf("append ledger entry: %w", err)
	}

	s.logger.Info().
		Uint("user_id", userID).
		Str("action", actionType).
		Int("credits", credits).
		Int64("balance", newBalance).
		Msg("credits debited")

	return entry, nil
}
