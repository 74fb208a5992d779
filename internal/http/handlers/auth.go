package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/supportdesk/internal/auth"
	"github.com/geocoder89/supportdesk/internal/config"
	"github.com/geocoder89/supportdesk/internal/domain/user"
	"github.com/geocoder89/supportdesk/internal/security"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, name, email, passwordHash string, role user.Role) (user.User, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        *auth.Manager
	cfg        config.Config
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwtManager *auth.Manager, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwtManager,
		cfg:        cfg,
	}
}

type RegisterRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=120"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"omitempty"`
	AdminCode string `json:"adminCode" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and logs it in immediately. Registering as
// admin requires the shared admin code; a mismatch is a hard 403 and no
// account is created.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// default role for new users
	role := user.RoleUser

	if req.Role != "" {
		parsed, err := user.ParseRole(req.Role)

		if err != nil {
			RespondBadRequest(ctx, "Invalid role", nil)
			return
		}
		role = parsed
	}

	if role == user.RoleAdmin && req.AdminCode != h.cfg.AdminSecret {
		RespondForbidden(ctx, "Invalid Admin secret key")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u, err := h.userWriter.Create(cctx, req.Name, req.Email, hash, role)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "email_taken", "Email is already in use.")
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	token, expiresIn, err := h.jwt.IssueAccessToken(u.ID, u.Role)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":   "successfully registered",
		"token":     token,
		"role":      u.Role,
		"expiresIn": int(expiresIn.Seconds()),
		"user":      u,
	})
}

// Login mints a token reflecting the account's current role. An unknown
// email and a wrong password fail differently on purpose (404 vs 401).
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "user not found")
			return
		}
		RespondInternal(ctx, "Could not log in")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "invalid credentials")
		return
	}

	token, expiresIn, err := h.jwt.IssueAccessToken(foundUser.ID, foundUser.Role)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":     token,
		"role":      foundUser.Role,
		"expiresIn": int(expiresIn.Seconds()),
	})
}
