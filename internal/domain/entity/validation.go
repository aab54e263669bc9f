package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of characters in a question title.
const MaxTitleLength = 100

// ValidateTitle checks that a question title is present and not too long.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
		}
	}
	return nil
}

// ValidateUserID checks the external user identifier.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &ValidationError{Field: "user_id", Message: "user_id is required"}
	}
	if utf8.RuneCountInString(userID) > 20 {
		return &ValidationError{Field: "user_id", Message: "user_id must not exceed 20 characters"}
	}
	return nil
}
