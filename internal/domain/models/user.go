package models

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"

	UserActive   = "active"
	UserDisabled = "disabled"
)

type User struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Name         string     `db:"name" json:"name"`
	Phone        string     `db:"phone" json:"phone"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	Status       string     `db:"status" json:"status"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

func (u *User) IsActive() bool { return u.Status == UserActive }

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}
