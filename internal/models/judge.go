package models

import "time"

// JudgeProfile describes an AI judge: a persona injected into the judging
// prompt together with the model it should run on by default.
type JudgeProfile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Persona      string    `gorm:"type:text;not null" json:"persona"`
	OwnerID      uint      `gorm:"not null;index" json:"owner_id"`
	DefaultModel string    `gorm:"size:64" json:"default_model"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ContestJudge assigns a judge profile to a contest. Evaluations may only
// run for assigned judges.
type ContestJudge struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ContestID      uint         `gorm:"not null;index:idx_contest_judge,unique" json:"contest_id"`
	JudgeProfileID uint         `gorm:"not null;index:idx_contest_judge,unique" json:"judge_profile_id"`
	CreatedAt      time.Time    `json:"created_at"`
	JudgeProfile   JudgeProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"judge_profile"`
}
