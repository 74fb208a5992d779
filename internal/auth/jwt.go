package auth

import (
	"errors"
	"time"

	"github.com/geocoder89/supportdesk/internal/domain/user"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed, tampered,
// expired, wrong algorithm. Callers must not distinguish between them.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	AccountID string `json:"sub"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies stateless HS256 access tokens. The signing
// secret is injected once at startup, never read from ambient globals.
type Manager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewManager(secret string, accessTTL time.Duration) *Manager {
	return &Manager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// IssueAccessToken binds accountID and role into a signed token valid for
// the configured TTL. Tokens are not persisted and cannot be revoked early.
func (m *Manager) IssueAccessToken(accountID string, role user.Role) (token string, expiresIn time.Duration, err error) {
	now := time.Now().UTC()

	claims := Claims{
		AccountID: accountID,
		Role:      string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			Subject:   accountID,
		},
	}

	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	token, err = raw.SignedString(m.secret)

	if err != nil {
		return "", 0, err
	}

	return token, m.accessTTL, nil
}

// VerifyAccessToken is a pure function of token + secret. Any failure mode
// collapses into ErrInvalidToken.
func (m *Manager) VerifyAccessToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256

		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	role, err := user.ParseRole(claims.Role)

	if err != nil {
		return nil, ErrInvalidToken
	}
	claims.Role = string(role)

	return claims, nil
}
