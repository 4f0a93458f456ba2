package entities

import "time"

// UserRole determines which operations a user may perform.
type UserRole string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"
)

// Valid reports whether the role is one of the closed set of roles.
func (r UserRole) Valid() bool {
	return r == UserRoleMember || r == UserRoleAdmin
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150" json:"username"`
	FullName     string    `gorm:"size:200" json:"full_name"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	Role         UserRole  `gorm:"size:50;default:'member'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may perform catalog mutations.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
