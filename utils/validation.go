package utils

import (
	"errors"
	"strings"
)

func ValidateTaskTitle(title string) error {
	if len(title) == 0 || len(title) > 255 {
		return errors.New("title must be between 1 and 255 characters")
	}
	return nil
}

// ValidateCredentials checks that both registration fields are present.
// Password complexity is deliberately not enforced here.
func ValidateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("username is required")
	}
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}
