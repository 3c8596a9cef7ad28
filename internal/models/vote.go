package models

import "time"

// Vote records the place and commentary an AI judge gave one submission
// during an evaluation run. Uniqueness per (judge, submission) is enforced
// by the evaluation flow, which replaces a judge's votes wholesale on
// re-evaluation.
type Vote struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ContestID      uint      `gorm:"not null;index" json:"contest_id"`
	JudgeProfileID uint      `gorm:"not null;index" json:"judge_profile_id"`
	SubmissionID   uint      `gorm:"not null;index" json:"submission_id"`
	Place          *int      `json:"place"`
	Comment        string    `gorm:"type:text" json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}
