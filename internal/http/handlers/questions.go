package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/supportdesk/internal/config"
	"github.com/geocoder89/supportdesk/internal/domain/question"
	"github.com/geocoder89/supportdesk/internal/policy"
	"github.com/geocoder89/supportdesk/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionsStore interface {
	Create(ctx context.Context, questionText, askedBy string) (question.Question, error)
	GetByID(ctx context.Context, id string) (question.Question, error)
	ListAll(ctx context.Context) ([]question.Question, error)
	ListByAsker(ctx context.Context, askerID string) ([]question.Question, error)
	SetAnswer(ctx context.Context, id, answer string) (question.Question, error)
	Delete(ctx context.Context, id string) error
}

type QuestionsHandler struct {
	repo QuestionsStore
}

func NewQuestionsHandler(repo QuestionsStore) *QuestionsHandler {
	return &QuestionsHandler{repo: repo}
}

// Ask files a question. The asker is always the authenticated actor,
// regardless of anything in the payload.
func (h *QuestionsHandler) Ask(ctx *gin.Context) {
	accountID, _, ok := actorFrom(ctx)
	if !ok {
		return
	}

	var req question.AskRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	q, err := h.repo.Create(cctx, req.QuestionText, accountID)

	if err != nil {
		RespondInternal(ctx, "Failed to ask question")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Question sent to admin",
		"question": q,
	})
}

// ListMine is the explicit own-scope listing: it returns only the caller's
// questions, with no role-based branching that could leak other users'
// records if a filter were ever dropped. Admins list everything through the
// admin router instead.
func (h *QuestionsHandler) ListMine(ctx *gin.Context) {
	accountID, _, ok := actorFrom(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	questions, err := h.repo.ListByAsker(cctx, accountID)

	if err != nil {
		RespondInternal(ctx, "Failed to fetch questions")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": questions,
		"count": len(questions),
	})
}

// Answer sets the answer field. Both the question's owner and any admin may
// write it; the policy decides, the handler only fetches and enforces.
func (h *QuestionsHandler) Answer(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "question id must be a valid UUID", nil)
		return
	}

	var req question.AnswerRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	q, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, question.ErrNotFound) {
			RespondNotFound(ctx, "Question not found")
			return
		}
		RespondInternal(ctx, "Failed to submit answer")
		return
	}

	if !policy.Allows(role, accountID, q.AskedBy, policy.QuestionAnswer) {
		RespondForbidden(ctx, "Access denied")
		return
	}

	updated, err := h.repo.SetAnswer(cctx, id, req.Answer)

	if err != nil {
		if errors.Is(err, question.ErrNotFound) {
			RespondNotFound(ctx, "Question not found")
			return
		}
		RespondInternal(ctx, "Failed to submit answer")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Answer submitted",
		"question": updated,
	})
}
