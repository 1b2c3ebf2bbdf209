package domain

import (
	"strings"
	"time"
)

// Role is the coarse permission level carried in access tokens.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// CanTeach reports whether the role may own classrooms.
func (r Role) CanTeach() bool { return r == RoleTeacher || r == RoleAdmin }

type User struct {
	ID            string
	Email         string // lower-cased
	FullName      string
	PasswordHash  string // argon2id PHC string
	Role          Role
	Active        bool
	AvatarKey     string // object key, empty when unset
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeactivatedAt *time.Time
}

// NormalizeEmail is the canonical form e-mails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
