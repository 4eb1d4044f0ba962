package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cosmobits-leads-api/config"
	"cosmobits-leads-api/models"
	"cosmobits-leads-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuperAdminEmail returns the configured always-allowed admin email, lowercased.
// It is process-wide configuration, never a database row, so the account can
// never be locked out by an allow-list edit.
func SuperAdminEmail() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv("SUPER_ADMIN_EMAIL")))
}

// CanSignIn decides whether an email may enter the admin area: the configured
// super admin, an existing ADMIN/SUPER_ADMIN account, or an allow-listed email.
// Callers surface a deny as a generic access-denied response; the reason is
// never reported to the client.
func CanSignIn(email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}
	if super := SuperAdminEmail(); super != "" && email == super {
		return true, nil
	}

	var user models.User
	err := config.DB.Where("email = ?", email).First(&user).Error
	if err == nil && user.IsAdmin() {
		return true, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	var count int64
	if err := config.DB.Model(&models.AllowedAdmin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ResolveRole returns the role a brand-new account gets for this email.
func ResolveRole(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if super := SuperAdminEmail(); super != "" && email == super {
		return models.RoleSuperAdmin, nil
	}

	var count int64
	if err := config.DB.Model(&models.AllowedAdmin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return models.RoleAdmin, nil
	}
	return models.RoleUser, nil
}

// UpsertGoogleUser loads or creates the account for a verified Google sign-in.
// The role is resolved once at creation; an existing account keeps whatever
// role it already holds, even if the allow-list changed since.
func UpsertGoogleUser(email, name, image string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := config.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		updates := map[string]interface{}{}
		if name != "" && (user.Name == nil || *user.Name != name) {
			updates["name"] = name
		}
		if image != "" && (user.Image == nil || *user.Image != image) {
			updates["image"] = image
		}
		if len(updates) > 0 {
			if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := ResolveRole(email)
	if err != nil {
		return nil, err
	}

	user = models.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  optional(name),
		Image: optional(image),
		Role:  role,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAllowedAdmins returns the allow-list, newest first.
func ListAllowedAdmins() ([]models.AllowedAdmin, error) {
	var admins []models.AllowedAdmin
	if err := config.DB.Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// AddAllowedAdmin grants an email admin access on its next sign-in. Only a
// SUPER_ADMIN actor may mutate the allow-list; the check lives here rather than
// in the route layer so no caller can skip it.
func AddAllowedAdmin(email, name, actorEmail, actorRole string) (*models.AllowedAdmin, error) {
	if actorRole != models.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: only a super admin may manage the allow-list", ErrForbidden)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	var count int64
	if err := config.DB.Model(&models.AllowedAdmin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s is already in the allowed list", ErrConflict, email)
	}

	admin := models.AllowedAdmin{
		ID:      uuid.NewString(),
		Email:   email,
		Name:    optional(strings.TrimSpace(name)),
		AddedBy: actorEmail,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// RemoveAllowedAdmin deletes an allow-list entry. The configured super admin's
// own entry can never be removed.
func RemoveAllowedAdmin(id, actorRole string) error {
	if actorRole != models.RoleSuperAdmin {
		return fmt.Errorf("%w: only a super admin may manage the allow-list", ErrForbidden)
	}

	var admin models.AllowedAdmin
	if err := config.DB.Where("id = ?", id).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: allowed admin %s", ErrNotFound, id)
		}
		return err
	}

	if super := SuperAdminEmail(); super != "" && admin.Email == super {
		return fmt.Errorf("%w: cannot remove the super admin", ErrForbidden)
	}

	return config.DB.Delete(&admin).Error
}
