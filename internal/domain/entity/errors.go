package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	// or has already been soft-deleted.
	ErrNotFound = errors.New("entity not found")

	// ErrUnauthorized indicates that content was constructed without an owning user.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCannotDelete indicates that an ownership rule rejected a deletion.
	// Every *CannotDeleteError matches it via errors.Is.
	ErrCannotDelete = errors.New("cannot delete")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyExists indicates a uniqueness conflict, such as a taken user id.
	ErrAlreadyExists = errors.New("entity already exists")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// DeleteRule identifies which ownership rule rejected a deletion.
type DeleteRule string

const (
	// RuleQuestionOwner fails when the acting user did not author the question.
	RuleQuestionOwner DeleteRule = "question_owner"
	// RuleForeignAnswer fails when an answer written by someone else blocks the deletion.
	RuleForeignAnswer DeleteRule = "foreign_answer"
)

// Human-readable reasons attached to CannotDeleteError.
const (
	ReasonQuestionOwner = "you do not have permission to delete this question"
	ReasonForeignAnswer = "cannot delete: an answer written by another user exists"
)

// CannotDeleteError is returned when an ownership check fails.
// Rule tells callers which check failed; Reason is safe to show to users.
type CannotDeleteError struct {
	Rule      DeleteRule
	Reason    string
	ContentID int64
}

// Error returns the human-readable reason.
func (e *CannotDeleteError) Error() string {
	return e.Reason
}

// Is reports whether target is ErrCannotDelete.
func (e *CannotDeleteError) Is(target error) bool {
	return target == ErrCannotDelete
}

func newCannotDelete(rule DeleteRule, contentID int64) *CannotDeleteError {
	reason := ReasonQuestionOwner
	if rule == RuleForeignAnswer {
		reason = ReasonForeignAnswer
	}
	return &CannotDeleteError{Rule: rule, Reason: reason, ContentID: contentID}
}
