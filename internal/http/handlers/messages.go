package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/supportdesk/internal/config"
	"github.com/geocoder89/supportdesk/internal/domain/message"
	"github.com/geocoder89/supportdesk/internal/domain/user"
	"github.com/geocoder89/supportdesk/internal/policy"
	"github.com/gin-gonic/gin"
)

type MessageWriter interface {
	Create(ctx context.Context, text, sender, recipient string) (message.Message, error)
}

type RecipientReader interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type MessagesHandler struct {
	messages MessageWriter
	users    RecipientReader
}

func NewMessagesHandler(messages MessageWriter, users RecipientReader) *MessagesHandler {
	return &MessagesHandler{messages: messages, users: users}
}

// Send stores a directed message. The sender is always the authenticated
// actor; a client-supplied sender field would be ignored. Messages are
// stored only, never pushed or listed.
func (h *MessagesHandler) Send(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	var req message.SendRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !policy.Allows(role, accountID, accountID, policy.MessageCreate) {
		RespondForbidden(ctx, "Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	_, err := h.users.GetByID(cctx, req.RecipientID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "Recipient not found")
			return
		}
		RespondInternal(ctx, "Failed to send message")
		return
	}

	m, err := h.messages.Create(cctx, req.Text, accountID, req.RecipientID)

	if err != nil {
		RespondInternal(ctx, "Failed to send message")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Message sent",
		"data":    m,
	})
}
