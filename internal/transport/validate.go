package transport

import (
	"net/mail"
	"unicode"
	"unicode/utf8"
)

// FieldError reports which request field failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return FieldError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

func ValidateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < 3 || n > 64 {
		return FieldError{Field: "username", Message: "must be between 3 and 64 characters"}
	}
	for _, r := range username {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlnum {
			return FieldError{Field: "username", Message: "must not contain special characters"}
		}
	}
	return nil
}

func ValidatePassword(password string) error {
	// Lengths count runes, not bytes; a multibyte special character is
	// still one character against the limits.
	if n := utf8.RuneCountInString(password); n < 8 || n > 64 {
		return FieldError{Field: "password", Message: "must be between 8 and 64 characters"}
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return FieldError{Field: "password", Message: "must contain uppercase characters"}
	case !hasLower:
		return FieldError{Field: "password", Message: "must contain lowercase characters"}
	case !hasDigit:
		return FieldError{Field: "password", Message: "must contain numbers"}
	case !hasSpecial:
		return FieldError{Field: "password", Message: "must contain special characters"}
	}
	return nil
}
