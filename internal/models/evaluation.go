package models

import (
	"time"

	"gorm.io/datatypes"
)

// Evaluation is the audit record for one AI judging run. Exactly one row
// exists per (contest, triggering user); a re-run deletes the previous row
// and its votes before inserting the replacement.
type Evaluation struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	ContestID        uint              `gorm:"not null;index:idx_eval_contest_actor" json:"contest_id"`
	JudgeProfileID   uint              `gorm:"not null;index" json:"judge_profile_id"`
	TriggeredByID    uint              `gorm:"not null;index:idx_eval_contest_actor" json:"triggered_by_id"`
	Model            string            `gorm:"size:64;not null" json:"model"`
	Prompt           string            `gorm:"type:text" json:"prompt"`
	ResponseText     string            `gorm:"type:text" json:"response_text"`
	PromptTokens     int               `gorm:"default:0" json:"prompt_tokens"`
	CompletionTokens int               `gorm:"default:0" json:"completion_tokens"`
	Cost             float64           `gorm:"default:0" json:"cost"`
	Raw              datatypes.JSONMap `json:"raw"`
	CreatedAt        time.Time         `json:"created_at"`
}
