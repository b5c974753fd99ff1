// Package password holds the local checks run before a password change or reset
// is sent to the booking API.
package password

import (
	"net/http"
	"unicode"

	"github.com/ijalalfrz/flight-booking-bff/internal/pkg/exception"
)

const MinLength = 8

var (
	ErrNoResetToken  = validation("No reset token provided.")
	ErrInvalidReset  = validation("This reset link is invalid or has expired.")
	ErrResetTooShort = validation("Password must be at least 8 characters long.")
	ErrResetMismatch = validation("Passwords do not match.")

	ErrOldRequired    = validation("Old password is required")
	ErrNewRequired    = validation("New password is required")
	ErrChangeTooShort = validation("New password must be at least 8 characters")
	ErrChangeMismatch = validation("Passwords do not match")
)

func validation(message string) exception.ApplicationError {
	return exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Kind:       exception.KindValidation,
		Message:    message,
	}
}

// ValidateReset checks a reset form. The token is checked by the caller.
func ValidateReset(newPassword, confirmPassword string) error {
	if len([]rune(newPassword)) < MinLength {
		return ErrResetTooShort
	}

	if newPassword != confirmPassword {
		return ErrResetMismatch
	}

	return nil
}

// ValidateChange returns the first failing check of a change password form.
func ValidateChange(oldPassword, newPassword, confirmPassword string) error {
	switch {
	case oldPassword == "":
		return ErrOldRequired
	case newPassword == "":
		return ErrNewRequired
	case len([]rune(newPassword)) < MinLength:
		return ErrChangeTooShort
	case newPassword != confirmPassword:
		return ErrChangeMismatch
	}

	return nil
}

var labels = []string{"Weak", "Fair", "Good", "Strong", "Very Strong"}

// Strength scores a password from 1 (Weak) to 5 (Very Strong), one point each for
// 8+ characters, 12+ characters, mixed case, a digit and a symbol. Any non-empty
// password is at least Weak; an empty one scores 0 with no label.
func Strength(pw string) (int, string) {
	if pw == "" {
		return 0, ""
	}

	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r) && r <= unicode.MaxASCII:
			digit = true
		default:
			symbol = true
		}
	}

	score := 0
	n := len([]rune(pw))
	for _, ok := range []bool{n >= 8, n >= 12, lower && upper, digit, symbol} {
		if ok {
			score++
		}
	}

	if score == 0 {
		score = 1
	}

	return score, labels[score-1]
}
