package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geocoder89/supportdesk/internal/auth"
	"github.com/geocoder89/supportdesk/internal/config"
	"github.com/geocoder89/supportdesk/internal/domain/user"
	"github.com/geocoder89/supportdesk/internal/http/handlers"
	"github.com/geocoder89/supportdesk/internal/repo/memory"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.Config {
	return config.Config{
		Env:                 "test",
		JWTSecret:           "test-secret-key",
		AdminSecret:         "super-secret-admin-code",
		JWTAccessTTLMinutes: 60,
	}
}

func newAuthRouter(users *memory.UsersRepo) (*gin.Engine, *auth.Manager) {
	cfg := testConfig()
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())

	h := handlers.NewAuthHandler(users, users, jwtManager, cfg)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)

	return r, jwtManager
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantRole   user.Role
	}{
		{
			name:       "plain user",
			body:       `{"name":"Ann","email":"ann@x.com","password":"secret1","role":"user"}`,
			wantStatus: http.StatusCreated,
			wantRole:   user.RoleUser,
		},
		{
			name:       "role defaults to user",
			body:       `{"name":"Bob","email":"bob@x.com","password":"secret1"}`,
			wantStatus: http.StatusCreated,
			wantRole:   user.RoleUser,
		},
		{
			name:       "admin with correct code",
			body:       `{"name":"Root","email":"root@x.com","password":"secret1","role":"admin","adminCode":"super-secret-admin-code"}`,
			wantStatus: http.StatusCreated,
			wantRole:   user.RoleAdmin,
		},
		{
			name:       "admin with wrong code",
			body:       `{"name":"Evil","email":"evil@x.com","password":"secret1","role":"admin","adminCode":"guess"}`,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin with missing code",
			body:       `{"name":"Evil","email":"evil2@x.com","password":"secret1","role":"admin"}`,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown role",
			body:       `{"name":"Odd","email":"odd@x.com","password":"secret1","role":"root"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing email",
			body:       `{"name":"NoMail","password":"secret1"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := memory.NewUsersRepo()
			r, jwtManager := newAuthRouter(users)

			w := doJSON(t, r, http.MethodPost, "/api/auth/register", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantStatus != http.StatusCreated {
				return
			}

			var resp struct {
				Token string    `json:"token"`
				Role  user.Role `json:"role"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}

			if resp.Token == "" {
				t.Fatal("expected a token in the response")
			}
			if resp.Role != tc.wantRole {
				t.Errorf("role = %q, want %q", resp.Role, tc.wantRole)
			}

			claims, err := jwtManager.VerifyAccessToken(resp.Token)
			if err != nil {
				t.Fatalf("minted token failed verification: %v", err)
			}
			if claims.Role != string(tc.wantRole) {
				t.Errorf("token role = %q, want %q", claims.Role, tc.wantRole)
			}
		})
	}
}

func TestRegisterRejectedAdminCreatesNoAccount(t *testing.T) {
	users := memory.NewUsersRepo()
	r, _ := newAuthRouter(users)

	body := `{"name":"Evil","email":"evil@x.com","password":"secret1","role":"admin","adminCode":"wrong"}`

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", body)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}

	_, err := users.GetByEmail(context.Background(), "evil@x.com")
	if err != user.ErrNotFound {
		t.Fatalf("expected no account after rejected registration, got err = %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := memory.NewUsersRepo()
	r, _ := newAuthRouter(users)

	body := `{"name":"Ann","email":"ann@x.com","password":"secret1"}`

	if w := doJSON(t, r, http.MethodPost, "/api/auth/register", body); w.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d, want 201", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", body)

	if w.Code != http.StatusConflict {
		t.Fatalf("second register: status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestLogin(t *testing.T) {
	users := memory.NewUsersRepo()
	r, jwtManager := newAuthRouter(users)

	register := `{"name":"Ann","email":"ann@x.com","password":"secret1","role":"user"}`
	if w := doJSON(t, r, http.MethodPost, "/api/auth/register", register); w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, want 201", w.Code)
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"correct credentials", `{"email":"ann@x.com","password":"secret1"}`, http.StatusOK},
		{"wrong password", `{"email":"ann@x.com","password":"nope123"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"ghost@x.com","password":"secret1"}`, http.StatusNotFound},
		{"malformed email", `{"email":"not-an-email","password":"secret1"}`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/auth/login", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantStatus != http.StatusOK {
				return
			}

			var resp struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}

			claims, err := jwtManager.VerifyAccessToken(resp.Token)
			if err != nil {
				t.Fatalf("login token failed verification: %v", err)
			}
			if claims.Role != string(user.RoleUser) {
				t.Errorf("token role = %q, want %q", claims.Role, user.RoleUser)
			}
		})
	}
}

func TestLoginReflectsCurrentRole(t *testing.T) {
	users := memory.NewUsersRepo()
	r, jwtManager := newAuthRouter(users)

	register := `{"name":"Ann","email":"ann@x.com","password":"secret1"}`
	if w := doJSON(t, r, http.MethodPost, "/api/auth/register", register); w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, want 201", w.Code)
	}

	// promote out-of-band, then log in again: the new token must carry the
	// current role even though old tokens keep the old one until expiry
	u, err := users.GetByEmail(context.Background(), "ann@x.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if _, err := users.UpdateRole(context.Background(), u.ID, user.RoleAdmin); err != nil {
		t.Fatalf("promote: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", `{"email":"ann@x.com","password":"secret1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, want 200", w.Code)
	}

	var resp struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expiresIn"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	claims, err := jwtManager.VerifyAccessToken(resp.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != string(user.RoleAdmin) {
		t.Errorf("token role = %q, want %q", claims.Role, user.RoleAdmin)
	}
	if resp.ExpiresIn != int(time.Hour.Seconds()) {
		t.Errorf("expiresIn = %d, want %d", resp.ExpiresIn, int(time.Hour.Seconds()))
	}
}
