package service

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/Skotchmaster/academic_records/internal/hash"
)

const (
	MinPasswordLength = 6
	maxPasswordBytes  = hash.MaxPasswordBytes
)

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	RoleName string
}

type LoginInput struct {
	Email    string
	Password string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail accepts a bare address whose domain has at least two non-empty
// labels, e.g. ada@uni.edu but not ada@localhost.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	domain := email[strings.LastIndexByte(email, '@')+1:]
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return true
}

func (in *RegisterInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = NormalizeEmail(in.Email)
	in.RoleName = strings.TrimSpace(in.RoleName)
}

func (in RegisterInput) Validate() error {
	var ve ValidationError
	if in.FullName == "" {
		ve.add("full_name", "Full name is required")
	}
	if !validEmail(in.Email) {
		ve.add("email", "Please provide a valid email")
	}
	switch {
	case utf8.RuneCountInString(in.Password) < MinPasswordLength:
		ve.add("password", "Password must be at least 6 characters")
	case len(in.Password) > maxPasswordBytes:
		ve.add("password", "Password must be at most 72 bytes")
	}
	if in.RoleName == "" {
		ve.add("role_name", "Role is required")
	}
	return ve.orNil()
}

func (in *LoginInput) normalize() {
	in.Email = NormalizeEmail(in.Email)
}

func (in LoginInput) Validate() error {
	var ve ValidationError
	if !validEmail(in.Email) {
		ve.add("email", "Please provide a valid email")
	}
	if in.Password == "" {
		ve.add("password", "Password is required")
	}
	return ve.orNil()
}
