// Package entity defines the core domain entities and deletion rules for the application.
// It contains the Question/Answer aggregate, the User identity value, the DeleteHistory
// audit record, the ownership rules and the cascade deletion engine.
package entity

import "time"

// Question is the aggregate root of a thread. It holds the canonical,
// insertion-ordered list of its answers.
type Question struct {
	ID        int64
	Title     string
	Contents  string
	Writer    User
	Answers   []*Answer
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// NewQuestion creates an unpersisted question after validating the title.
func NewQuestion(title, contents string, writer User) (*Question, error) {
	if writer.IsGuest() {
		return nil, ErrUnauthorized
	}
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	return &Question{
		Title:     title,
		Contents:  contents,
		Writer:    writer,
		CreatedAt: time.Now(),
	}, nil
}

// AddAnswer attaches a to the question, setting both sides of the relation.
func (q *Question) AddAnswer(a *Answer) {
	a.QuestionID = q.ID
	q.Answers = append(q.Answers, a)
}

// ActiveAnswers returns the attached answers that are not deleted, in insertion order.
func (q *Question) ActiveAnswers() []*Answer {
	active := make([]*Answer, 0, len(q.Answers))
	for _, a := range q.Answers {
		if !a.Deleted {
			active = append(active, a)
		}
	}
	return active
}

// IsOwner reports whether u wrote the question.
func (q *Question) IsOwner(u User) bool {
	return q.Writer.Equals(u)
}

// ValidateOwnership fails with RuleQuestionOwner when u did not write the question.
func (q *Question) ValidateOwnership(u User) error {
	if !q.IsOwner(u) {
		return newCannotDelete(RuleQuestionOwner, q.ID)
	}
	return nil
}

// CheckDeletable is the check pass of a cascade deletion. It validates the
// question and then every active answer, stopping at the first failure.
// It never mutates the aggregate.
func (q *Question) CheckDeletable(u User) error {
	if err := q.ValidateOwnership(u); err != nil {
		return err
	}
	for _, a := range q.ActiveAnswers() {
		if err := a.ValidateOwnership(u); err != nil {
			return err
		}
	}
	return nil
}

// Delete soft-deletes the question and its active answers on behalf of u.
// The result holds one QUESTION record followed by one ANSWER record per
// deleted answer, in insertion order. When any ownership check fails the
// aggregate is left untouched and no records are produced.
func (q *Question) Delete(u User, at time.Time) ([]DeleteHistory, error) {
	if err := q.CheckDeletable(u); err != nil {
		return nil, err
	}
	return q.applyDelete(at), nil
}

// applyDelete is the unconditional mutation pass.
func (q *Question) applyDelete(at time.Time) []DeleteHistory {
	active := q.ActiveAnswers()
	histories := make([]DeleteHistory, 0, len(active)+1)

	q.Deleted = true
	histories = append(histories, NewDeleteHistory(ContentTypeQuestion, q.ID, q.Writer, at))
	for _, a := range active {
		histories = append(histories, a.Delete(at))
	}
	return histories
}
