// Package qna exposes the question, answer and delete history endpoints.
package qna

import (
	"time"

	"qna/internal/domain/entity"
)

// UserDTO is the public view of a user. Credentials never leave the server.
type UserDTO struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// AnswerDTO represents an active answer.
type AnswerDTO struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	Writer     UserDTO   `json:"writer"`
	Contents   string    `json:"contents"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionDTO represents an active question with its active answers.
type QuestionDTO struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Contents  string      `json:"contents"`
	Writer    UserDTO     `json:"writer"`
	Answers   []AnswerDTO `json:"answers"`
	CreatedAt time.Time   `json:"created_at"`
}

// DeleteHistoryDTO represents one audit record.
type DeleteHistoryDTO struct {
	ID          int64     `json:"id"`
	ContentType string    `json:"content_type"`
	ContentID   int64     `json:"content_id"`
	DeletedBy   string    `json:"deleted_by"`
	CreatedDate time.Time `json:"created_date"`
}

type createQuestionRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

type createAnswerRequest struct {
	Contents string `json:"contents"`
}

func toUserDTO(u entity.User) UserDTO {
	return UserDTO{UserID: u.UserID, Name: u.Name}
}

func toAnswerDTO(a *entity.Answer) AnswerDTO {
	return AnswerDTO{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		Writer:     toUserDTO(a.Writer),
		Contents:   a.Contents,
		CreatedAt:  a.CreatedAt,
	}
}

func toQuestionDTO(q *entity.Question) QuestionDTO {
	active := q.ActiveAnswers()
	answers := make([]AnswerDTO, 0, len(active))
	for _, a := range active {
		answers = append(answers, toAnswerDTO(a))
	}
	return QuestionDTO{
		ID:        q.ID,
		Title:     q.Title,
		Contents:  q.Contents,
		Writer:    toUserDTO(q.Writer),
		Answers:   answers,
		CreatedAt: q.CreatedAt,
	}
}

func toHistoryDTOs(histories []entity.DeleteHistory) []DeleteHistoryDTO {
	out := make([]DeleteHistoryDTO, 0, len(histories))
	for _, h := range histories {
		out = append(out, DeleteHistoryDTO{
			ID:          h.ID,
			ContentType: h.ContentType.String(),
			ContentID:   h.ContentID,
			DeletedBy:   h.DeletedBy.UserID,
			CreatedDate: h.CreatedDate,
		})
	}
	return out
}
