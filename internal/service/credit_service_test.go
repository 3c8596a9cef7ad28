package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/relato-ai/relato/internal/models"
	"github.com/relato-ai/relato/internal/repository"
)

func TestChargeDebitsAndSnapshotsBalance(t *testing.T) {
	db, store := setupServiceDB(t)
	user := models.User{Name: "Spender", Email: "spender@example.com", Credits: 30}
	require.NoError(t, db.Create(&user).Error)
	credits := NewCreditService(zerolog.Nop())
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx repository.Store) error {
		entry, err := credits.Charge(ctx, tx, user.ID, models.CreditActionWriting, 12, 0.08, "test debit")
		require.NoError(t, err)
		require.Equal(t, int64(-12), entry.CreditsChange)
		require.Equal(t, int64(18), entry.ResultingBalance)
		return nil
	})
	require.NoError(t, err)

	reloaded, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(18), reloaded.Credits)

	entries, err := store.Ledger().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 0.08, entries[0].RealCost)
}

func TestChargeSequentialDebitsKeepLedgerConsistent(t *testing.T) {
	db, store := setupServiceDB(t)
	user := models.User{Name: "Spender", Email: "spender@example.com", Credits: 10}
	require.NoError(t, db.Create(&user).Error)
	credits := NewCreditService(zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		err := store.Transaction(ctx, func(tx repository.Store) error {
			_, err := credits.Charge(ctx, tx, user.ID, models.CreditActionEvaluation, 4, 0.01, "run")
			return err
		})
		require.NoError(t, err)
	}

	entries, err := store.Ledger().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, int64(6), entries[0].ResultingBalance)
	require.Equal(t, int64(2), entries[1].ResultingBalance)
}

func TestChargeInsufficientBalanceAbortsTransaction(t *testing.T) {
	db, store := setupServiceDB(t)
	user := models.User{Name: "Broke", Email: "broke@example.com", Credits: 5}
	require.NoError(t, db.Create(&user).Error)
	credits := NewCreditService(zerolog.Nop())
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx repository.Store) error {
		_, err := credits.Charge(ctx, tx, user.ID, models.CreditActionEvaluation, 6, 0.04, "too expensive")
		return err
	})
	require.True(t, errors.Is(err, ErrInsufficientCredits))

	reloaded, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5), reloaded.Credits)

	entries, err := store.Ledger().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestChargeRejectsNegativeAmount(t *testing.T) {
	db, store := setupServiceDB(t)
	user := models.User{Name: "Spender", Email: "spender@example.com", Credits: 30}
	require.NoError(t, db.Create(&user).Error)
	credits := NewCreditService(zerolog.Nop())
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx repository.Store) error {
		_, err := credits.Charge(ctx, tx, user.ID, models.CreditActionEvaluation, -1, 0, "bad")
		return err
	})
	require.Error(t, err)
}
