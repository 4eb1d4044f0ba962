package models

import "time"

// StatusUpdate is one append-only audit record on a lead: either a status
// assignment or a note that an email went out (with its subject and body).
// Rows are never edited or deleted.
type StatusUpdate struct {
	ID           string     `gorm:"primaryKey;column:id;size:36" json:"id"`
	ContactID    string     `gorm:"column:contact_id;size:36;index" json:"contact_id"`
	Status       LeadStatus `gorm:"column:status" json:"status"`
	Comment      *string    `gorm:"column:comment" json:"comment,omitempty"`
	EmailSubject *string    `gorm:"column:email_subject" json:"email_subject,omitempty"`
	EmailBody    *string    `gorm:"column:email_body;type:text" json:"email_body,omitempty"`
	UpdatedBy    *string    `gorm:"column:updated_by" json:"updated_by,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table for StatusUpdate.
func (StatusUpdate) TableName() string {
	return "status_updates"
}
