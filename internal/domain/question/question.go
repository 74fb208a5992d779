package question

import (
	"errors"
	"time"
)

type Question struct {
	ID           string    `json:"id"`
	QuestionText string    `json:"questionText"`
	AskedBy      string    `json:"askedBy"`
	Answer       string    `json:"answer"` // empty string means unanswered
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("question not found")

type AskRequest struct {
	QuestionText string `json:"questionText" binding:"required,min=3,max=2000"`
}

type AnswerRequest struct {
	Answer string `json:"answer" binding:"required,max=5000"`
}
