// Package qna provides the question and answer use cases.
// Its central operation is the audited cascade deletion of a question,
// executed inside a single transaction boundary.
package qna

import (
	"fmt"

	"qna/internal/domain/entity"
)

// Sentinel errors for qna use case operations.
// Both not-found errors match entity.ErrNotFound via errors.Is.
var (
	// ErrQuestionNotFound indicates that the question does not exist or is already deleted.
	ErrQuestionNotFound = fmt.Errorf("question not found: %w", entity.ErrNotFound)

	// ErrAnswerNotFound indicates that the answer does not exist or is already deleted.
	ErrAnswerNotFound = fmt.Errorf("answer not found: %w", entity.ErrNotFound)
)
