package user

import "strings"

// Role tags the kind of account a session belongs to.
type Role string

// Roles
const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// ParseRole maps a user supplied role name to a Role; anything but "teacher" is a student,
// the login form only offers the two choices.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleTeacher)) {
		return RoleTeacher
	}
	return RoleStudent
}

// User is a teacher account. Accounts are created by the demo seeder only.
type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Email    string `json:"email"` // login identifier, matched case-insensitively
	Password string `json:"password"`
	Name     string `json:"name"`
}
