package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/supportdesk/internal/config"
	"github.com/geocoder89/supportdesk/internal/domain/user"
	"github.com/geocoder89/supportdesk/internal/policy"
	"github.com/geocoder89/supportdesk/internal/utils"
	"github.com/gin-gonic/gin"
)

type UserAdminStore interface {
	List(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	UpdateRole(ctx context.Context, id string, role user.Role) (user.User, error)
	Delete(ctx context.Context, id string) error
}

// AdminUsersHandler sits behind RequireAuth + RequireRole(admin); the policy
// checks inside are the authoritative visibility decision.
type AdminUsersHandler struct {
	users UserAdminStore
}

func NewAdminUsersHandler(users UserAdminStore) *AdminUsersHandler {
	return &AdminUsersHandler{users: users}
}

func (h *AdminUsersHandler) ListUsers(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	if !policy.Allows(role, accountID, "", policy.UserRead) {
		RespondForbidden(ctx, "Admin resource! Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	users, err := h.users.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Failed to fetch users")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

func (h *AdminUsersHandler) GetUser(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "user id must be a valid UUID", nil)
		return
	}

	if !policy.Allows(role, accountID, id, policy.UserRead) {
		RespondForbidden(ctx, "Admin resource! Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Failed to fetch user")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// UpdateUserRole is the only path that may change a role (promote/demote).
func (h *AdminUsersHandler) UpdateUserRole(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "user id must be a valid UUID", nil)
		return
	}

	var req user.UpdateRoleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	newRole, err := user.ParseRole(req.Role)

	if err != nil {
		RespondBadRequest(ctx, "Invalid role", nil)
		return
	}

	if !policy.Allows(role, accountID, id, policy.UserUpdateRole) {
		RespondForbidden(ctx, "Admin resource! Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.UpdateRole(cctx, id, newRole)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Failed to update role")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User role updated",
		"user":    u,
	})
}

// DeleteUser hard-deletes the account. Questions and messages the account
// authored survive on purpose.
func (h *AdminUsersHandler) DeleteUser(ctx *gin.Context) {
	accountID, role, ok := actorFrom(ctx)
	if !ok {
		return
	}

	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "user id must be a valid UUID", nil)
		return
	}

	if !policy.Allows(role, accountID, id, policy.UserDelete) {
		RespondForbidden(ctx, "Admin resource! Access denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.users.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Failed to delete user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
