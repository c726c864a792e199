package model

import "time"

// ListItem is a checklist entry owned by a Member. ListType is a free-form
// category such as "chores" or "groceries".
type ListItem struct {
	ListID      uint      `json:"list_id" gorm:"column:list_id;primaryKey"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	IsCompleted bool      `json:"is_completed" gorm:"not null;default:false"`
	ListType    string    `json:"list_type" gorm:"size:100;not null;index"`
	MemberID    uint      `json:"member_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName pins the table name.
func (ListItem) TableName() string {
	return "list_items"
}
