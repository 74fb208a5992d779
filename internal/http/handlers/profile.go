package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/supportdesk/internal/config"
	"github.com/geocoder89/supportdesk/internal/domain/user"
	"github.com/geocoder89/supportdesk/internal/http/middlewares"
	"github.com/geocoder89/supportdesk/internal/policy"
	"github.com/geocoder89/supportdesk/internal/security"
	"github.com/gin-gonic/gin"
)

type ProfileStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (user.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type ProfileHandler struct {
	users ProfileStore
}

func NewProfileHandler(users ProfileStore) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// actorFrom pulls the verified identity the auth middleware attached.
// Handlers never read identity from the request body.
func actorFrom(ctx *gin.Context) (string, user.Role, bool) {
	accountID, ok := middlewares.AccountIDFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "missing_token", "Missing identity")
		return "", "", false
	}

	role, ok := middlewares.RoleFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "missing_token", "Missing identity")
		return "", "", false
	}

	return accountID, role, true
}

func (h *ProfileHandler) GetProfile(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	if !policy.Allows(role, accountID, accountID, policy.UserRead) {
		RespondForbidden(ctx, "Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, accountID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Failed to fetch profile")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// UpdateProfile changes name/email for the caller's own account only. Role
// is never writable here.
func (h *ProfileHandler) UpdateProfile(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !policy.Allows(role, accountID, accountID, policy.UserUpdateProfile) {
		RespondForbidden(ctx, "Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.UpdateProfile(cctx, accountID, req.Name, req.Email)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			RespondConflict(ctx, "email_taken", "Email already in use")
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		default:
			RespondInternal(ctx, "Failed to update profile")
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"user":    u,
	})
}

// ChangePassword re-hashes and stores the new password. Previously issued
// tokens stay valid until they expire; there is no server-side revocation.
func (h *ProfileHandler) ChangePassword(ctx *gin.Context) {
	accountID, _, ok := actorFrom(ctx)
	if !ok {
		return
	}

	var req user.ChangePasswordRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, accountID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Failed to change password")
		return
	}

	err = security.CheckPassword(u.PasswordHash, req.CurrentPassword)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Current password is incorrect")
		return
	}

	hash, err := security.HashPassword(req.NewPassword)

	if err != nil {
		RespondInternal(ctx, "Failed to change password")
		return
	}

	err = h.users.UpdatePassword(cctx, accountID, hash)

	if err != nil {
		RespondInternal(ctx, "Failed to change password")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
