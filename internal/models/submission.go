package models

import "time"

// Submission is a contest entry. The body may be human-written or produced
// by the AI writer on behalf of its author.
type Submission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ContestID   uint      `gorm:"not null;index" json:"contest_id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	IsGenerated bool      `gorm:"not null;default:false" json:"is_generated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Contest     Contest   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
