package models

import "time"

// Role levels. A user's role is assigned once at first sign-in and is never
// implicitly downgraded afterwards.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User is an account created on first Google sign-in.
type User struct {
	ID        string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	Email     string    `gorm:"column:email;unique" json:"email"`
	Name      *string   `gorm:"column:name" json:"name,omitempty"`
	Image     *string   `gorm:"column:image" json:"image,omitempty"`
	Role      string    `gorm:"column:role;default:USER" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table for User.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may access the admin area.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
