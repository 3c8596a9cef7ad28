package models

import "time"

// Credit action types recorded in the ledger.
const (
	CreditActionEvaluation = "ai_evaluation"
	CreditActionWriting    = "ai_writing"
	CreditActionTopUp      = "top_up"
)

// CreditEntry is one append-only row of the credit ledger. CreditsChange is
// signed (debits are negative) and ResultingBalance snapshots the user's
// balance immediately after this entry, inside the same transaction as the
// balance mutation.
type CreditEntry struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	ActionType       string    `gorm:"size:32;not null" json:"action_type"`
	CreditsChange    int64     `gorm:"not null" json:"credits_change"`
	RealCost         float64   `gorm:"default:0" json:"real_cost"`
	Description      string    `gorm:"size:512" json:"description"`
	ResultingBalance int64     `gorm:"not null" json:"resulting_balance"`
	CreatedAt        time.Time `json:"created_at"`
}
