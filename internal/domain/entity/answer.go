package entity

import "time"

// Answer is a reply attached to a Question.
// QuestionID is a back-reference set by Question.AddAnswer.
type Answer struct {
	ID         int64
	Writer     User
	QuestionID int64
	Contents   string
	Deleted    bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// NewAnswer creates an answer for question written by writer.
// A missing writer yields ErrUnauthorized and a missing question ErrNotFound.
func NewAnswer(writer *User, question *Question, contents string) (*Answer, error) {
	if writer == nil || writer.IsGuest() {
		return nil, ErrUnauthorized
	}
	if question == nil {
		return nil, ErrNotFound
	}
	return &Answer{
		Writer:     *writer,
		QuestionID: question.ID,
		Contents:   contents,
		CreatedAt:  time.Now(),
	}, nil
}

// IsOwner reports whether u wrote the answer.
func (a *Answer) IsOwner(u User) bool {
	return a.Writer.Equals(u)
}

// ValidateOwnership fails with RuleForeignAnswer when u did not write the answer.
func (a *Answer) ValidateOwnership(u User) error {
	if !a.IsOwner(u) {
		return newCannotDelete(RuleForeignAnswer, a.ID)
	}
	return nil
}

// Delete flags the answer as deleted and returns its history record.
// It does not check ownership; callers run ValidateOwnership first.
func (a *Answer) Delete(at time.Time) DeleteHistory {
	a.Deleted = true
	return NewDeleteHistory(ContentTypeAnswer, a.ID, a.Writer, at)
}
