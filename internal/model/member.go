package model

import "time"

// Member is a family member belonging to exactly one User.
type Member struct {
	MemberID  uint      `json:"member_id" gorm:"column:member_id;primaryKey"`
	FirstName string    `json:"first_name" gorm:"size:255;not null"`
	LastName  string    `json:"last_name" gorm:"size:255;not null"`
	IsAdmin   bool      `json:"is_admin" gorm:"not null;default:false"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Lists []ListItem `json:"lists" gorm:"foreignKey:MemberID;references:MemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
