package models

import "time"

// User represents a platform account that can write, judge, and spend credits.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Credits   int64     `gorm:"not null;default:0" json:"credits"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanAfford reports whether the user's balance covers the given credit cost.
func (u User) CanAfford(credits int64) bool {
	return u.Credits >= credits
}
