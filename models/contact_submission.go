package models

import "time"

// ContactSubmission is a contact-form inquiry (a "lead").
type ContactSubmission struct {
	ID            string     `gorm:"primaryKey;column:id;size:36" json:"id"`
	Name          string     `gorm:"column:name" json:"name"`
	Email         string     `gorm:"column:email" json:"email"`
	Company       *string    `gorm:"column:company" json:"company,omitempty"`
	Phone         *string    `gorm:"column:phone" json:"phone,omitempty"`
	Service       string     `gorm:"column:service" json:"service"`
	Message       string     `gorm:"column:message;type:text" json:"message"`
	CurrentStatus LeadStatus `gorm:"column:current_status;default:POTENTIAL_LEAD" json:"current_status"`
	EmailSent     bool       `gorm:"column:email_sent" json:"email_sent"`
	EmailError    *string    `gorm:"column:email_error" json:"email_error,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	StatusHistory []StatusUpdate `gorm:"foreignKey:ContactID" json:"status_history,omitempty"`
}

// TableName specifies the table for ContactSubmission.
func (ContactSubmission) TableName() string {
	return "contact_submissions"
}
