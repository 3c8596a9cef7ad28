package models

import "time"

// WritingRequest is the audit record for one AI writing run. It is
// one-to-one with the submission it produced.
type WritingRequest struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ContestID        uint      `gorm:"not null;index" json:"contest_id"`
	WriterID         uint      `gorm:"not null;index" json:"writer_id"`
	SubmissionID     uint      `gorm:"not null;uniqueIndex" json:"submission_id"`
	Model            string    `gorm:"size:64;not null" json:"model"`
	Prompt           string    `gorm:"type:text" json:"prompt"`
	ResponseText     string    `gorm:"type:text" json:"response_text"`
	PromptTokens     int       `gorm:"default:0" json:"prompt_tokens"`
	CompletionTokens int       `gorm:"default:0" json:"completion_tokens"`
	Cost             float64   `gorm:"default:0" json:"cost"`
	CreatedAt        time.Time `json:"created_at"`
}
