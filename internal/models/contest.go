package models

import "time"

// ContestStatus enumerates the lifecycle states of a writing contest.
const (
	ContestStatusOpen    = "open"
	ContestStatusJudging = "judging"
	ContestStatusClosed  = "closed"
)

// Contest represents a writing contest that accepts submissions and judge evaluations.
type Contest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:32;not null;default:open" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AcceptsSubmissions reports whether new submissions may still be created.
func (c Contest) AcceptsSubmissions() bool {
	return c.Status == ContestStatusOpen
}
