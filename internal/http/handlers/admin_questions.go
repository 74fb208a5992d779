package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/supportdesk/internal/config"
	"github.com/geocoder89/supportdesk/internal/domain/question"
	"github.com/geocoder89/supportdesk/internal/policy"
	"github.com/geocoder89/supportdesk/internal/utils"
	"github.com/gin-gonic/gin"
)

type AdminQuestionsHandler struct {
	repo QuestionsStore
}

func NewAdminQuestionsHandler(repo QuestionsStore) *AdminQuestionsHandler {
	return &AdminQuestionsHandler{repo: repo}
}

func (h *AdminQuestionsHandler) ListQuestions(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	if !policy.Allows(role, accountID, "", policy.QuestionRead) {
		RespondForbidden(ctx, "Admin resource! Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	questions, err := h.repo.ListAll(cctx)

	if err != nil {
		RespondInternal(ctx, "Failed to fetch questions")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": questions,
		"count": len(questions),
	})
}

// CreateQuestion files a question authored by the admin themselves; askedBy
// is the admin's own id, same as the user-facing ask.
func (h *AdminQuestionsHandler) CreateQuestion(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	var req question.AskRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !policy.Allows(role, accountID, accountID, policy.QuestionCreate) {
		RespondForbidden(ctx, "Admin resource! Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	q, err := h.repo.Create(cctx, req.QuestionText, accountID)

	if err != nil {
		RespondInternal(ctx, "Failed to create question")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Question created successfully",
		"question": q,
	})
}

func (h *AdminQuestionsHandler) Respond(ctx *gin.Context) {
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
		RespondInternal(ctx, "Failed to respond")
		return
	}

	if !policy.Allows(role, accountID, q.AskedBy, policy.QuestionAnswer) {
		RespondForbidden(ctx, "Admin resource! Access denied")
		return
	}

	updated, err := h.repo.SetAnswer(cctx, id, req.Answer)

	if err != nil {
		if errors.Is(err, question.ErrNotFound) {
			RespondNotFound(ctx, "Question not found")
			return
		}
		RespondInternal(ctx, "Failed to respond")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Response sent",
		"question": updated,
	})
}

// ClearAnswer resets the answer to empty. Clearing an already-empty answer
// succeeds and leaves the record unchanged.
func (h *AdminQuestionsHandler) ClearAnswer(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "question id must be a valid UUID", nil)
		return
	}

	if !policy.Allows(role, accountID, "", policy.QuestionClearAnswer) {
		RespondForbidden(ctx, "Admin resource! Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	updated, err := h.repo.SetAnswer(cctx, id, "")

	if err != nil {
		if errors.Is(err, question.ErrNotFound) {
			RespondNotFound(ctx, "Question not found")
			return
		}
		RespondInternal(ctx, "Failed to delete answer")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Answer cleared",
		"question": updated,
	})
}

func (h *AdminQuestionsHandler) DeleteQuestion(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "question id must be a valid UUID", nil)
		return
	}

	if !policy.Allows(role, accountID, "", policy.QuestionDelete) {
		RespondForbidden(ctx, "Admin resource! Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, question.ErrNotFound) {
			RespondNotFound(ctx, "Question not found")
			return
		}
		RespondInternal(ctx, "Failed to delete question")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
