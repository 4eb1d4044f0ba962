package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cosmobits-leads-api/config"
	"cosmobits-leads-api/models"
	"cosmobits-leads-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedComment is written on the history entry created with every new submission.
const SeedComment = "New contact form submission received"

// SubmissionInput carries the validated fields of a public contact-form post.
type SubmissionInput struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Service string
	Message string
}

// LeadPage is one page of leads plus pagination metadata. Each item carries at
// most its single most recent history entry, for summary display.
type LeadPage struct {
	Items      []models.ContactSubmission `json:"leads"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"limit"`
	Total      int64                      `json:"total"`
	TotalPages int                        `json:"total_pages"`
}

// CreateSubmission persists a new lead with status POTENTIAL_LEAD and its seed
// history entry in one transaction. The write must succeed before any
// notification email is attempted; callers handle email separately.
func CreateSubmission(input SubmissionInput) (*models.ContactSubmission, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Service = strings.TrimSpace(input.Service)
	input.Message = strings.TrimSpace(input.Message)

	if input.Name == "" || input.Email == "" || input.Service == "" || input.Message == "" {
		return nil, fmt.Errorf("%w: name, email, service and message are required", ErrValidation)
	}
	if !utils.ValidateEmail(input.Email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	submission := models.ContactSubmission{
		ID:            uuid.NewString(),
		Name:          input.Name,
		Email:         input.Email,
		Company:       optional(input.Company),
		Phone:         optional(input.Phone),
		Service:       input.Service,
		Message:       input.Message,
		CurrentStatus: models.StatusPotentialLead,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		seed := models.StatusUpdate{
			ID:        uuid.NewString(),
			ContactID: submission.ID,
			Status:    models.StatusPotentialLead,
			Comment:   optional(SeedComment),
		}
		return tx.Create(&seed).Error
	})
	if err != nil {
		return nil, err
	}

	return &submission, nil
}

// UpdateStatus sets a lead's current status and appends the matching history
// entry in one transaction, then returns the lead with its full history in
// chronological order.
func UpdateStatus(id, newStatus string, comment, actor string) (*models.ContactSubmission, error) {
	if !models.ValidLeadStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	var submission models.ContactSubmission
	if err := config.DB.Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lead %s", ErrNotFound, id)
		}
		return nil, err
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&submission).Update("current_status", newStatus).Error; err != nil {
			return err
		}
		entry := models.StatusUpdate{
			ID:        uuid.NewString(),
			ContactID: submission.ID,
			Status:    models.LeadStatus(newStatus),
			Comment:   optional(comment),
			UpdatedBy: optional(actor),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return GetWithHistory(id)
}

// RecordEmailSent appends a history entry documenting an outgoing ad-hoc email.
// The lead's current status is unchanged; only updated_at is bumped so the lead
// surfaces at the top of the list.
func RecordEmailSent(id, subject, body, actor string) error {
	var submission models.ContactSubmission
	if err := config.DB.Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: lead %s", ErrNotFound, id)
		}
		return err
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.StatusUpdate{
			ID:           uuid.NewString(),
			ContactID:    submission.ID,
			Status:       submission.CurrentStatus,
			Comment:      optional(fmt.Sprintf("Email sent: %q", subject)),
			EmailSubject: optional(subject),
			EmailBody:    optional(body),
			UpdatedBy:    optional(actor),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&submission).Update("updated_at", time.Now()).Error
	})
}

// MarkEmailOutcome records whether the intake notification emails went out.
// Best effort: the submission is already saved, so a failure here is only logged
// by the caller.
func MarkEmailOutcome(id string, sent bool, sendErr string) error {
	updates := map[string]interface{}{
		"email_sent":  sent,
		"email_error": optional(sendErr),
	}
	return config.DB.Model(&models.ContactSubmission{}).Where("id = ?", id).Updates(updates).Error
}

// GetWithHistory returns one lead with its history entries oldest first.
func GetWithHistory(id string) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	err := config.DB.
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lead %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &submission, nil
}

// ListLeads returns a page of leads ordered by most recent activity. The search
// term matches name, email, company or phone as a substring; status filters on
// the exact enum value. Pages past the end come back empty rather than failing.
func ListLeads(search, status string, page, pageSize int) (*LeadPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	query := config.DB.Model(&models.ContactSubmission{})

	if search != "" {
		term := "%" + search + "%"
		query = query.Where(
			"name LIKE ? OR email LIKE ? OR company LIKE ? OR phone LIKE ?",
			term, term, term, term,
		)
	}
	if status != "" {
		query = query.Where("current_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.ContactSubmission
	err := query.
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("updated_at DESC, created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	// Summary view only needs the latest entry per lead.
	for i := range items {
		if len(items[i].StatusHistory) > 1 {
			items[i].StatusHistory = items[i].StatusHistory[:1]
		}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &LeadPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
