package account

import (
	"regexp"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 8
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateEmail returns the message for an invalid address, or "".
func ValidateEmail(email string) string {
	if email == "" || !emailPattern.MatchString(email) {
		return "Please enter a valid email address"
	}
	return ""
}

// ValidateUsername returns the message for an invalid username, or "".
func ValidateUsername(username string) string {
	n := utf8.RuneCountInString(username)
	switch {
	case username == "":
		return "Username is required"
	case n < MinUsernameLength:
		return "Username must be at least 3 characters"
	case n > MaxUsernameLength:
		return "Username must be at most 20 characters"
	case !usernamePattern.MatchString(username):
		return "Username can only contain letters, numbers, underscores, and hyphens"
	}
	return ""
}

// ValidatePassword returns the message for a too-short password, or "".
func ValidatePassword(password string) string {
	if password == "" {
		return "Password is required"
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "Password must be at least 8 characters"
	}
	return ""
}

// ValidateLogin checks the sign-in form.
func ValidateLogin(email, password string) FieldErrors {
	errs := FieldErrors{}
	if msg := ValidateEmail(email); msg != "" {
		errs["email"] = msg
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

// ValidateRegistration checks the sign-up form; every violated field is
// reported.
func ValidateRegistration(email, username, password, confirm string) FieldErrors {
	errs := FieldErrors{}
	if msg := ValidateEmail(email); msg != "" {
		errs["email"] = msg
	}
	if msg := ValidateUsername(username); msg != "" {
		errs["username"] = msg
	}
	if msg := ValidatePassword(password); msg != "" {
		errs["password"] = msg
	}
	if confirm != password {
		errs["confirm_password"] = "Passwords do not match"
	}
	return errs
}

// ValidatePasswordChange checks the settings password form.
func ValidatePasswordChange(current, next, confirm string) FieldErrors {
	errs := FieldErrors{}
	if current == "" {
		errs["current_password"] = "Current password is required"
	}
	if utf8.RuneCountInString(next) < MinPasswordLength {
		errs["new_password"] = "New password must be at least 8 characters"
	}
	if next != confirm {
		errs["confirm_password"] = "Passwords do not match"
	}
	return errs
}

// ValidateUsernameChange checks the settings username form.
func ValidateUsernameChange(current, next string) FieldErrors {
	errs := FieldErrors{}
	if next == current {
		errs["username"] = "New username is the same as current username"
		return errs
	}
	if msg := ValidateUsername(next); msg != "" {
		errs["username"] = msg
	}
	return errs
}
