package dto

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxNameLength     = 255
	minPasswordLength = 8
	passwordSpecials  = `!@#$%^&*()-_=+[{]}\|;:'",<.>/?`
)

func validateEmail(email string) string {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "email must be valid"
	}
	return ""
}

func validateName(name string) string {
	if utf8.RuneCountInString(name) > maxNameLength {
		return "name must be at most 255 characters"
	}
	return ""
}

func validatePassword(password string) string {
	if len(password) < minPasswordLength {
		return "password must be at least 8 characters long"
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
		if strings.ContainsRune(passwordSpecials, r) {
			special = true
		}
	}

	switch {
	case !upper:
		return "password must contain at least one uppercase letter"
	case !lower:
		return "password must contain at least one lowercase letter"
	case !digit:
		return "password must contain at least one digit"
	case !special:
		return "password must contain at least one special character"
	}
	return ""
}
