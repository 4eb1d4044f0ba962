package models

import "time"

// AllowedAdmin is an email pre-authorized to receive admin access on its next
// Google sign-in. Emails are stored lowercased.
type AllowedAdmin struct {
	ID        string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	Email     string    `gorm:"column:email;unique" json:"email"`
	Name      *string   `gorm:"column:name" json:"name,omitempty"`
	AddedBy   string    `gorm:"column:added_by" json:"added_by"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table for AllowedAdmin.
func (AllowedAdmin) TableName() string {
	return "allowed_admins"
}
