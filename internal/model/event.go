package model

import "time"

// Event is a calendar entry owned by a User. Start and End are stored as the
// client sent them.
type Event struct {
	EventID   uint      `json:"event_id" gorm:"column:event_id;primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Start     string    `json:"start" gorm:"column:starts_at;size:64;not null"`
	End       string    `json:"end" gorm:"column:ends_at;size:64;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
