package student

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
)

const (
	idPrefix   = "S"
	idRollSize = 4
)

type Student struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Roll     string `json:"roll"`
	Class    string `json:"class"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Matches reports whether any of name, roll or class contains q, case-insensitively.
// q must already be lowered.
func (s Student) Matches(q string) bool {
	return strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.Roll), q) ||
		strings.Contains(strings.ToLower(s.Class), q)
}

// IDFromRoll derives a student ID from a roll number: "S" followed by the roll left-padded with zeros to 4 characters.
func IDFromRoll(roll string) string {
	if n := utf8.RuneCountInString(roll); n < idRollSize {
		roll = strings.Repeat("0", idRollSize-n) + roll
	}
	return idPrefix + roll
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name     string `json:"name" validate:"required"`
	Roll     string `json:"roll" validate:"required"`
	Class    string `json:"class" validate:"required"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Roll = core.CleanString(ns.Roll)
	ns.Class = core.CleanString(ns.Class)
	ns.Email = core.CleanString(ns.Email)
	ns.Password = core.CleanString(ns.Password)
	return validate.Struct(ns)
}

type ResetPassword struct {
	Password string `json:"password" validate:"required"`
}

func (rp *ResetPassword) Validate(validate *validator.Validate) error {
	rp.Password = core.CleanString(rp.Password)
	return validate.Struct(rp)
}
